package curriculum

// Topic is one unit of study within a subject. Order within the subject file
// is the intended teaching order.
type Topic struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Difficulty string   `yaml:"difficulty"`
	Objectives []string `yaml:"objectives"`
}

// Subject is an ordered sequence of topics loaded from one YAML file.
type Subject struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Topics []Topic `yaml:"topics"`
}
