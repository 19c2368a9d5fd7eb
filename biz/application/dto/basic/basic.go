package basic

// 通用响应头与分页参数

type Response struct {
	Code int32  `json:"code"`
	Msg  string `json:"msg"`
}

type Page struct {
	Page   *int64  `json:"page,omitempty"`
	Size   *int64  `json:"size,omitempty"`
	Cursor *string `json:"cursor,omitempty"`
}

func (p *Page) GetPage() int64 {
	if p == nil || p.Page == nil {
		return 1
	}
	return *p.Page
}

func (p *Page) GetSize() int64 {
	if p == nil || p.Size == nil {
		return 10
	}
	return *p.Size
}

func (p *Page) GetCursor() string {
	if p == nil || p.Cursor == nil {
		return ""
	}
	return *p.Cursor
}
