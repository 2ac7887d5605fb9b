package core

// A DBNode is a content item. Its type selects the content type settings which apply to it.
type DBNode interface {
	ID() int
	Type() string
	Title() string
}

type NodeDB interface {
	GetNode(id int) (DBNode, error)
	InsertNode(nodeType, title string) (DBNode, error)
	IsNotFound(err error) bool
}

// ContentTypeDB provides the per-content-type settings. It is read-only for us.
type ContentTypeDB interface {
	GrantTabEnabled(contentType string) (bool, error) // false if the content type is unknown
}
