package app

// host exposes the application to scripts.
type host struct {
	app *Application
}

func (h host) GetVar(name string) float64 {
	return h.app.console.GetVar(name)
}

func (h host) SetVar(name string, value float64) {
	h.app.console.SetVar(name, value)
}

func (h host) ExecuteString(line string) error {
	return h.app.console.ExecuteString(line)
}

// RunMacro fails with toolbox.ErrReentrant when called from inside a macro.
func (h host) RunMacro(title string) error {
	return h.app.Run(title)
}
