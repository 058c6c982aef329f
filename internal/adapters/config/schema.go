package config

// Manifest represents the structure of the depcache.yaml file.
type Manifest struct {
	Version string            `yaml:"version"`
	Root    string            `yaml:"root"`
	Types   map[string]string `yaml:"types"`
	Outputs []OutputDTO       `yaml:"outputs"`
}

// OutputDTO represents one output declaration.
type OutputDTO struct {
	Path         string     `yaml:"path"`
	Type         string     `yaml:"type"`
	OrderMatters bool       `yaml:"orderMatters"`
	Inputs       []InputDTO `yaml:"inputs"`
}

// InputDTO represents one input of an output. Exactly one of Path, Glob and Data is set.
type InputDTO struct {
	Path     string  `yaml:"path"`
	Glob     string  `yaml:"glob"`
	Data     *string `yaml:"data"`
	Name     string  `yaml:"name"`
	Type     string  `yaml:"type"`
	Optional bool    `yaml:"optional"`
}
