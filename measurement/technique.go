package measurement

// Technique selects which instrument families a measurement covers.
// Readers use it to decide which column blocks to keep: electrochemistry
// blocks require IsEC, mass-spectrometry channels require IsMS.
type Technique uint8

const (
	TechniqueECMS Technique = 0x1 // TechniqueECMS represents combined EC-MS measurements.
	TechniqueEC   Technique = 0x2 // TechniqueEC represents electrochemistry-only measurements.
	TechniqueMS   Technique = 0x3 // TechniqueMS represents mass-spectrometry-only measurements.
)

func (t Technique) String() string {
	switch t {
	case TechniqueECMS:
		return "EC-MS"
	case TechniqueEC:
		return "EC"
	case TechniqueMS:
		return "MS"
	default:
		return "Unknown"
	}
}

// IsEC reports whether the technique includes electrochemistry data.
func (t Technique) IsEC() bool {
	return t == TechniqueECMS || t == TechniqueEC
}

// IsMS reports whether the technique includes mass-spectrometry data.
func (t Technique) IsMS() bool {
	return t == TechniqueECMS || t == TechniqueMS
}
