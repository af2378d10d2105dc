package domain

// Args maps option names to resolved values: *Member, *Role, *Channel,
// []string, float64, int64 or bool.
type Args map[string]any

func (a Args) SubCommand() string {
	s, _ := a[SubCommandKey].(string)
	return s
}

func (a Args) Member(name string) (*Member, bool) {
	m, ok := a[name].(*Member)
	return m, ok
}

func (a Args) Role(name string) (*Role, bool) {
	r, ok := a[name].(*Role)
	return r, ok
}

func (a Args) Channel(name string) (*Channel, bool) {
	c, ok := a[name].(*Channel)
	return c, ok
}

func (a Args) Strings(name string) []string {
	s, _ := a[name].([]string)
	return s
}

func (a Args) Int(name string) (int64, bool) {
	i, ok := a[name].(int64)
	return i, ok
}

func (a Args) Number(name string) (float64, bool) {
	f, ok := a[name].(float64)
	return f, ok
}

func (a Args) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}
