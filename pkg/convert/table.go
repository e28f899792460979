package convert

import "strings"

// Role is the part a file plays in a scene. Each role has one extension
// the renderer reads or writes natively.
type Role string

const (
	RoleTexture     Role = "texture"
	RoleMesh        Role = "mesh"
	RoleFrameBuffer Role = "framebuffer"
)

// Phase says when a conversion runs relative to the renderer.
type Phase int

const (
	// PhasePre converts an input before the renderer starts.
	PhasePre Phase = iota
	// PhasePost converts a renderer output after it exits.
	PhasePost
)

func (p Phase) String() string {
	if p == PhasePost {
		return "post"
	}
	return "pre"
}

// Conversion maps a foreign extension to the converter that bridges it to
// the native format of a role.
type Conversion struct {
	Ext       string
	Converter string
	Phase     Phase
}

// Format lists the native extension of a role and its known conversions.
type Format struct {
	Role        Role
	Native      string
	Conversions []Conversion
}

var formats = []Format{
	{
		Role:   RoleMesh,
		Native: ".mesh",
		Conversions: []Conversion{
			{Ext: ".ply", Converter: "ply2mesh", Phase: PhasePre},
			{Ext: ".obj", Converter: "obj2mesh", Phase: PhasePre},
		},
	},
	{
		Role:   RoleTexture,
		Native: ".mip",
		Conversions: []Conversion{
			{Ext: ".hdr", Converter: "hdr2mip", Phase: PhasePre},
			{Ext: ".jpg", Converter: "jpg2mip", Phase: PhasePre},
		},
	},
	{
		Role:   RoleFrameBuffer,
		Native: ".fb",
		Conversions: []Conversion{
			{Ext: ".exr", Converter: "fb2exr", Phase: PhasePost},
		},
	},
}

// Table returns the conversion table.
func Table() []Format {
	out := make([]Format, len(formats))
	for i, f := range formats {
		out[i] = f
		out[i].Conversions = append([]Conversion(nil), f.Conversions...)
	}
	return out
}

// Lookup returns the format entry of a role.
func Lookup(role Role) (Format, bool) {
	for _, f := range formats {
		if f.Role == role {
			return f, true
		}
	}
	return Format{}, false
}

// IsNative reports whether ext is the native extension of f.
// Extensions compare case-insensitively.
func (f Format) IsNative(ext string) bool {
	return strings.EqualFold(ext, f.Native)
}

// Find returns the conversion registered for ext.
func (f Format) Find(ext string) (Conversion, bool) {
	for _, c := range f.Conversions {
		if strings.EqualFold(c.Ext, ext) {
			return c, true
		}
	}
	return Conversion{}, false
}
