package provider

import (
	"sync"

	"github.com/google/wire"
	"github.com/parsa-ai/parsa-core-api/biz/application/service"
	"github.com/parsa-ai/parsa-core-api/biz/domain/chat"
	"github.com/parsa-ai/parsa-core-api/biz/infra/config"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/apikey"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/attachment"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/conversation"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/folder"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/message"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/reaction"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/user"
	"github.com/parsa-ai/parsa-core-api/biz/infra/storage"
	"github.com/parsa-ai/parsa-core-api/pkg/ac"
)

var (
	provider *Provider
	once     sync.Once
)

// Init 幂等, 重复调用只初始化一次
func Init() {
	once.Do(func() {
		var err error
		provider, err = NewProvider()
		if err != nil {
			panic(err)
		}
		if words := provider.Config.Chat.SensitiveWords; len(words) > 0 {
			if err = ac.InitAc(words); err != nil {
				panic(err)
			}
		}
	})
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config              *config.Config
	ChatService         service.IChatService
	ConversationService service.IConversationService
	FolderService       service.IFolderService
	MessageService      service.IMessageService
	UserService         service.IUserService
	AdminService        service.IAdminService
	AttachService       service.IAttachService
}

func Get() *Provider {
	return provider
}

var ApplicationSet = wire.NewSet(
	service.ChatServiceSet,
	service.ConversationServiceSet,
	service.FolderServiceSet,
	service.MessageServiceSet,
	service.UserServiceSet,
	service.AdminServiceSet,
	service.AttachServiceSet,
)

var DomainSet = wire.NewSet(
	chat.RelayDomainSet,
	chat.TitleDomainSet,
)

var InfraSet = wire.NewSet(
	config.NewConfig,
	storage.NewCOS,
	conversation.NewConversationMongoMapper,
	message.NewMessageMongoMapper,
	user.NewUserMongoMapper,
	folder.NewFolderMongoMapper,
	reaction.NewReactionMongoMapper,
	apikey.NewApiKeyMongoMapper,
	attachment.NewAttachmentMongoMapper,
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	DomainSet,
	InfraSet,
)
