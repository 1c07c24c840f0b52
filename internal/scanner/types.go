package scanner

import "github.com/fenilsonani/winclean/internal/platform"

// Footprint is what a cleanup of one target directory would consider
type Footprint struct {
	Category string        `json:"category,omitempty" yaml:"category,omitempty"`
	Label    string        `json:"label,omitempty" yaml:"label,omitempty"`
	Dir      string        `json:"dir,omitempty" yaml:"dir,omitempty"`
	Mode     platform.Mode `json:"mode" yaml:"mode"`
	Files    int64         `json:"files" yaml:"files"`
	Bytes    int64         `json:"bytes" yaml:"bytes"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Total sums files and bytes across results
func Total(results []Footprint) Footprint {
	var total Footprint
	for _, fp := range results {
		total.Files += fp.Files
		total.Bytes += fp.Bytes
	}
	return total
}
