package domain

// NexusComponents holds the four Nexus-formula inputs. c.f. art. 24d CIT.
type NexusComponents struct {
	A float64 `json:"a"` // direct B+R costs
	B float64 `json:"b"` // unrelated external costs
	C float64 `json:"c"` // related-party costs
	D float64 `json:"d"` // IP purchase costs
}

// Compute returns min(1, ((a+b)*1.3)/(a+b+c+d)), or 1.0 when the
// denominator is zero.
func (n NexusComponents) Compute() float64 {
	denom := n.A + n.B + n.C + n.D
	if denom <= 0 {
		return 1.0
	}
	ratio := ((n.A + n.B) * 1.3) / denom
	if ratio > 1 {
		return 1.0
	}
	if ratio < 0 {
		return 0
	}
	return ratio
}
