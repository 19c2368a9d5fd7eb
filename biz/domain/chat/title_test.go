package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/parsa-ai/parsa-core-api/biz/domain/model"
	"github.com/parsa-ai/parsa-core-api/biz/infra/config"
	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
	"github.com/stretchr/testify/assert"
)

type titleModel struct {
	content string
	err     error
	prompt  string
}

func (m *titleModel) Generate(ctx context.Context, in []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	if len(in) > 0 {
		m.prompt = in[0].Content
	}
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{Role: schema.Assistant, Content: m.content}, nil
}

func (m *titleModel) Stream(ctx context.Context, in []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not used")
}

func newTitleDomain(fc *fakeConversationMapper) *TitleDomain {
	cfg := &config.Config{}
	cfg.Chat.TitleGen = "عنوان بده: %s"
	return &TitleDomain{ConversationMapper: fc, Config: cfg}
}

func TestGenerateTitle(t *testing.T) {
	tm := &titleModel{content: "  «برنامه سفر»  "}
	model.RegisterModel(cst.ProviderOpenRouter, func(ctx context.Context, uid, name string) (einomodel.BaseChatModel, error) {
		return tm, nil
	})
	fc := newFakeConversationMapper()
	d := newTitleDomain(fc)

	d.GenerateTitle(context.Background(), "u1", "c1", "کجا بریم سفر؟")
	// 引号和空白要剥掉, 提示词里应带上用户消息
	assert.Equal(t, "برنامه سفر", fc.briefs["c1"])
	assert.Equal(t, "عنوان بده: کجا بریم سفر؟", tm.prompt)
}

func TestGenerateTitleFallback(t *testing.T) {
	model.RegisterModel(cst.ProviderOpenRouter, func(ctx context.Context, uid, name string) (einomodel.BaseChatModel, error) {
		return &titleModel{err: errors.New("upstream down")}, nil
	})
	fc := newFakeConversationMapper()
	d := newTitleDomain(fc)

	long := strings.Repeat("ب", cst.TitleFallbackChars+10)
	d.GenerateTitle(context.Background(), "u1", "c1", long)
	want := strings.Repeat("ب", cst.TitleFallbackChars) + cst.Ellipsis
	assert.Equal(t, want, fc.briefs["c1"])
}

func TestGenerateTitleTruncatesLongAnswer(t *testing.T) {
	model.RegisterModel(cst.ProviderOpenRouter, func(ctx context.Context, uid, name string) (einomodel.BaseChatModel, error) {
		return &titleModel{content: strings.Repeat("ت", cst.TitleMaxChars*2)}, nil
	})
	fc := newFakeConversationMapper()
	d := newTitleDomain(fc)

	d.GenerateTitle(context.Background(), "u1", "c1", "متن")
	assert.Equal(t, strings.Repeat("ت", cst.TitleMaxChars)+cst.Ellipsis, fc.briefs["c1"])
}
