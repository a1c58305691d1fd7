package cmd

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Show the version and build time of the reactive CLI.",
		Usage: "reactive version",
		Run: func(args []string) error {
			printVersion()
			return nil
		},
	})
}
