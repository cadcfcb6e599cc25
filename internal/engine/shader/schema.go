package shader

// Slot is a semantic shader input: a vertex attribute or a uniform.
type Slot int

const (
	AttrPos Slot = iota
	AttrNor
	AttrCol

	UnifModel
	UnifModelInvTr
	UnifViewProj
	UnifColor0
	UnifColor1
	UnifTime
	UnifNoiseFreq
	UnifShiftScale
	UnifShiftFreq
	UnifShiftSpeed
	UnifShiftSmoothness
	UnifDetailFreq
	UnifDetailScale
	UnifEye
	UnifRef
	UnifUp
	UnifDimensions

	slotCount
)

// slotNames are the GLSL identifiers a shader must declare to receive a slot.
var slotNames = [slotCount]string{
	AttrPos: "vs_Pos",
	AttrNor: "vs_Nor",
	AttrCol: "vs_Col",

	UnifModel:           "u_Model",
	UnifModelInvTr:      "u_ModelInvTr",
	UnifViewProj:        "u_ViewProj",
	UnifColor0:          "u_Color0",
	UnifColor1:          "u_Color1",
	UnifTime:            "u_Time",
	UnifNoiseFreq:       "u_NoiseFrequency",
	UnifShiftScale:      "u_ShiftScale",
	UnifShiftFreq:       "u_ShiftFreq",
	UnifShiftSpeed:      "u_ShiftSpeed",
	UnifShiftSmoothness: "u_ShiftSmoothness",
	UnifDetailFreq:      "u_DetailFreq",
	UnifDetailScale:     "u_DetailScale",
	UnifEye:             "u_Eye",
	UnifRef:             "u_Ref",
	UnifUp:              "u_Up",
	UnifDimensions:      "u_Dimensions",
}

// Name returns the GLSL identifier of the slot.
func (s Slot) Name() string {
	if s < 0 || s >= slotCount {
		return ""
	}
	return slotNames[s]
}

// IsAttribute reports whether the slot is a vertex attribute.
func (s Slot) IsAttribute() bool {
	return s <= AttrCol
}

func (s Slot) String() string {
	return s.Name()
}

// Schema declares which slots a program variant resolves. Slots outside the
// schema are never looked up and their setters do nothing.
type Schema struct {
	Name  string
	Slots []Slot
}

// LambertSchema drives the displaced, lit planet.
var LambertSchema = Schema{
	Name: "lambert",
	Slots: []Slot{
		AttrPos, AttrNor, AttrCol,
		UnifModel, UnifModelInvTr, UnifViewProj,
		UnifColor0, UnifColor1,
		UnifTime, UnifNoiseFreq,
		UnifShiftScale, UnifShiftFreq, UnifShiftSpeed, UnifShiftSmoothness,
		UnifDetailFreq, UnifDetailScale,
	},
}

// FlatSchema drives the unlit full-screen background.
var FlatSchema = Schema{
	Name: "flat",
	Slots: []Slot{
		AttrPos,
		UnifEye, UnifRef, UnifUp, UnifDimensions, UnifTime,
	},
}
