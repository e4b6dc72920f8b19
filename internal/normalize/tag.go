package normalize

// ComposeTag joins an action code and a product slug into the composite tag
// used downstream. Both parts are required; a missing side means no tag at
// all, never a partial one.
func ComposeTag(action, product *string) *string {
	if action == nil || product == nil || *action == "" || *product == "" {
		return nil
	}
	t := *action + "-" + *product
	return &t
}
