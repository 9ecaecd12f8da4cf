package ports

// Navigator receives navigation decisions. The CLI prints them, the console
// server returns them to its caller.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }
