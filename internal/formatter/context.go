package formatter

// Context 单个文档处理过程中的状态，每个文档新建一个
type Context struct {
	FromPlainText bool

	processed map[int]Role
	noIndent  map[int]bool
}

// NewContext 创建处理上下文
func NewContext(fromPlainText bool) *Context {
	return &Context{
		FromPlainText: fromPlainText,
		processed:     make(map[int]Role),
		noIndent:      make(map[int]bool),
	}
}

// MarkProcessed 记录已分配角色的块
func (c *Context) MarkProcessed(index int, role Role) {
	c.processed[index] = role
}

// Processed 返回块是否已分配角色
func (c *Context) Processed(index int) (Role, bool) {
	role, ok := c.processed[index]
	return role, ok
}

// MarkNoIndent 记录需要清除缩进的块
func (c *Context) MarkNoIndent(index int) {
	c.noIndent[index] = true
}

// NoIndent 块是否需要清除缩进
func (c *Context) NoIndent(index int) bool {
	return c.noIndent[index]
}

// ProcessedCount 已分配角色的块数
func (c *Context) ProcessedCount() int {
	return len(c.processed)
}
