package enrich

import "fmt"

// Coverage summarises how many measurements carried codebook metadata.
type Coverage struct {
	Total      int     `json:"total"`
	With       int     `json:"with_metadata"`
	Without    int     `json:"without_metadata"`
	Percentage float64 `json:"coverage_percentage"`
}

// Coverage computes hit statistics for r.
func (r Result) Coverage() Coverage {
	c := Coverage{Total: len(r.Measurements), With: r.Hits, Without: r.Misses}
	if c.Total > 0 {
		c.Percentage = float64(c.With) / float64(c.Total) * 100
	}
	return c
}

// Add accumulates another coverage into c.
func (c *Coverage) Add(o Coverage) {
	c.Total += o.Total
	c.With += o.With
	c.Without += o.Without
	c.Percentage = 0
	if c.Total > 0 {
		c.Percentage = float64(c.With) / float64(c.Total) * 100
	}
}

func (c Coverage) String() string {
	return fmt.Sprintf("GCAM coverage: %d/%d (%.1f%%) entries have metadata", c.With, c.Total, c.Percentage)
}
