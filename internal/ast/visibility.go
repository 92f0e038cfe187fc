package ast

// Visibility tags a class member's access level. The zero value,
// VisibilityNone, means "not yet decided" — ClassDecl defaults it to
// VisibilityProtected for any member that was never explicitly marked
// pub/priv.
type Visibility int

const (
	VisibilityNone Visibility = iota
	VisibilityPublic
	VisibilityPrivate
	VisibilityProtected
)

// prefix renders the member-qualifier text that precedes a declaration
// inside a class body, e.g. "public: ".
func (v Visibility) prefix() string {
	switch v {
	case VisibilityPublic:
		return "public: "
	case VisibilityPrivate:
		return "private: "
	case VisibilityProtected:
		return "protected: "
	default:
		return ""
	}
}

// keyword renders the bare access-specifier word, used for base-class
// inheritance lists ("class Foo : public Base").
func (v Visibility) keyword() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityPrivate:
		return "private"
	case VisibilityProtected:
		return "protected"
	default:
		return ""
	}
}
