package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/parsa-ai/parsa-core-api/biz/adaptor/controller/core_api"
)

// Register 注册所有HTTP路由
func Register(h *server.Hertz) {
	root := h.Group("/")
	root.POST("/chat", core_api.Chat)
	{
		_demo := root.Group("/demo")
		_demo.POST("/chat", core_api.DemoChat)
	}
	{
		_conversation := root.Group("/conversation")
		_conversation.POST("/create", core_api.CreateConversation)
		_conversation.POST("/list", core_api.ListConversation)
		_conversation.POST("/get", core_api.GetConversation)
		_conversation.POST("/update", core_api.UpdateConversation)
		_conversation.POST("/pin", core_api.PinConversation)
		_conversation.POST("/archive", core_api.ArchiveConversation)
		_conversation.POST("/delete", core_api.DeleteConversation)
		_conversation.POST("/search", core_api.SearchConversation)
	}
	{
		_folder := root.Group("/folder")
		_folder.POST("/create", core_api.CreateFolder)
		_folder.POST("/list", core_api.ListFolder)
		_folder.POST("/update", core_api.UpdateFolder)
		_folder.POST("/delete", core_api.DeleteFolder)
	}
	{
		_message := root.Group("/message")
		_message.POST("/react", core_api.React)
		_message.POST("/unreact", core_api.Unreact)
	}
	{
		_attach := root.Group("/attach")
		_attach.POST("/upload", core_api.Upload)
	}
	{
		_user := root.Group("/user")
		_user.POST("/login", core_api.Login)
		_user.POST("/me", core_api.GetMe)
	}
	{
		_admin := root.Group("/admin")
		_admin.POST("/stats", core_api.AdminStats)
		{
			_adminUser := _admin.Group("/user")
			_adminUser.POST("/list", core_api.ListUser)
			_adminUser.POST("/set_admin", core_api.SetAdmin)
		}
		{
			_apikey := _admin.Group("/apikey")
			_apikey.POST("/list", core_api.ListApiKey)
			_apikey.POST("/save", core_api.SaveApiKey)
			_apikey.POST("/update", core_api.UpdateApiKey)
			_apikey.POST("/delete", core_api.DeleteApiKey)
		}
	}
}
