package protocol

import "strings"

// Verb names a renderer instruction.
type Verb string

// Creation verbs.
const (
	VerbOpenPlugin        Verb = "OpenPlugin"
	VerbNewCamera         Verb = "NewCamera"
	VerbNewLight          Verb = "NewLight"
	VerbNewShader         Verb = "NewShader"
	VerbNewProcedure      Verb = "NewProcedure"
	VerbNewTexture        Verb = "NewTexture"
	VerbNewMesh           Verb = "NewMesh"
	VerbNewCurve          Verb = "NewCurve"
	VerbNewPointCloud     Verb = "NewPointCloud"
	VerbNewVolume         Verb = "NewVolume"
	VerbNewTurbulence     Verb = "NewTurbulence"
	VerbNewObjectGroup    Verb = "NewObjectGroup"
	VerbNewFrameBuffer    Verb = "NewFrameBuffer"
	VerbNewRenderer       Verb = "NewRenderer"
	VerbNewObjectInstance Verb = "NewObjectInstance"
)

// Assignment verbs.
const (
	VerbAssignShader      Verb = "AssignShader"
	VerbAssignTexture     Verb = "AssignTexture"
	VerbAssignCamera      Verb = "AssignCamera"
	VerbAssignFrameBuffer Verb = "AssignFrameBuffer"
	VerbAssignObjectGroup Verb = "AssignObjectGroup"
	VerbAssignTurbulence  Verb = "AssignTurbulence"
	VerbAssignVolume      Verb = "AssignVolume"
	VerbAssignMesh        Verb = "AssignMesh"
	VerbAddObjectToGroup  Verb = "AddObjectToGroup"
)

// Property verbs.
const (
	VerbSetProperty1       Verb = "SetProperty1"
	VerbSetProperty2       Verb = "SetProperty2"
	VerbSetProperty3       Verb = "SetProperty3"
	VerbSetProperty4       Verb = "SetProperty4"
	VerbSetSampleProperty3 Verb = "SetSampleProperty3"
	VerbSetStringProperty  Verb = "SetStringProperty"
)

// Control verbs.
const (
	VerbRunProcedure     Verb = "RunProcedure"
	VerbRenderScene      Verb = "RenderScene"
	VerbSaveFrameBuffer  Verb = "SaveFrameBuffer"
	VerbShowPropertyList Verb = "ShowPropertyList"
	VerbComment          Verb = "Comment"
)

// commentPrefix is the wire form of VerbComment.
const commentPrefix = "#"

// MaxCommentLength is the number of characters kept from a comment.
const MaxCommentLength = 128

// enumSymbols are the named constants the renderer accepts in place of a
// number. FIXED_GRID_SAMPER is the renderer's own spelling.
var enumSymbols = map[string]bool{
	// transform orders
	"ORDER_SRT": true, "ORDER_STR": true, "ORDER_RST": true,
	"ORDER_RTS": true, "ORDER_TRS": true, "ORDER_TSR": true,
	// rotate orders
	"ORDER_XYZ": true, "ORDER_XZY": true, "ORDER_YXZ": true,
	"ORDER_YZX": true, "ORDER_ZXY": true, "ORDER_ZYX": true,
	// sampler types
	"FIXED_GRID_SAMPER":     true,
	"ADAPTIVE_GRID_SAMPLER": true,
}

// IsSymbol reports whether s is a named constant valid in a number slot.
func IsSymbol(s string) bool { return enumSymbols[s] }

// Kind classifies a verb argument.
type Kind int

const (
	KindName   Kind = iota // entity name, e.g. "cam1"
	KindType               // type or plugin name, e.g. "PerspectiveCamera"
	KindPath               // file path
	KindNumber             // numeric value or enum symbol; numbers are canonicalized
	KindText               // free text, comments only
)

func (k Kind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindType:
		return "type"
	case KindPath:
		return "path"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	}
	return "unknown"
}

// Spec describes the arguments a verb accepts.
// The last Optional arguments of Args may be omitted.
type Spec struct {
	Verb     Verb
	Args     []Kind
	Labels   []string
	Optional int
}

// MinArgs returns the smallest accepted argument count.
func (s Spec) MinArgs() int { return len(s.Args) - s.Optional }

// MaxArgs returns the largest accepted argument count.
func (s Spec) MaxArgs() int { return len(s.Args) }

// Usage renders s as "Verb label label [label]".
func (s Spec) Usage() string {
	var b strings.Builder
	b.WriteString(string(s.Verb))
	for i, label := range s.Labels {
		b.WriteByte(' ')
		if i >= s.MinArgs() {
			b.WriteString("[" + label + "]")
			continue
		}
		b.WriteString(label)
	}
	return b.String()
}

func spec(v Verb, optional int, args ...any) Spec {
	s := Spec{Verb: v, Optional: optional}
	for i := 0; i < len(args); i += 2 {
		s.Labels = append(s.Labels, args[i].(string))
		s.Args = append(s.Args, args[i+1].(Kind))
	}
	return s
}

// specs lists every verb in protocol order.
var specs = []Spec{
	spec(VerbOpenPlugin, 0, "path", KindPath),

	spec(VerbNewCamera, 0, "name", KindName, "type", KindType),
	spec(VerbNewLight, 0, "name", KindName, "type", KindType),
	spec(VerbNewShader, 0, "name", KindName, "type", KindType),
	spec(VerbNewProcedure, 0, "name", KindName, "type", KindType),
	spec(VerbNewTexture, 0, "name", KindName, "path", KindPath),
	spec(VerbNewMesh, 0, "name", KindName, "path", KindPath),
	spec(VerbNewCurve, 0, "name", KindName, "path", KindPath),
	spec(VerbNewPointCloud, 0, "name", KindName, "path", KindPath),
	spec(VerbNewVolume, 0, "name", KindName),
	spec(VerbNewTurbulence, 0, "name", KindName),
	spec(VerbNewObjectGroup, 0, "name", KindName),
	spec(VerbNewFrameBuffer, 0, "name", KindName, "channels", KindType),
	spec(VerbNewRenderer, 1, "name", KindName, "accelerator", KindName),
	spec(VerbNewObjectInstance, 1, "name", KindName, "accelerator", KindName),

	spec(VerbAssignShader, 0, "object", KindName, "shading-group", KindName, "shader", KindName),
	spec(VerbAssignTexture, 0, "target", KindName, "property", KindName, "texture", KindName),
	spec(VerbAssignCamera, 0, "renderer", KindName, "camera", KindName),
	spec(VerbAssignFrameBuffer, 0, "renderer", KindName, "framebuffer", KindName),
	spec(VerbAssignObjectGroup, 0, "target", KindName, "property", KindName, "group", KindName),
	spec(VerbAssignTurbulence, 0, "target", KindName, "property", KindName, "turbulence", KindName),
	spec(VerbAssignVolume, 0, "target", KindName, "property", KindName, "volume", KindName),
	spec(VerbAssignMesh, 0, "target", KindName, "property", KindName, "mesh", KindName),
	spec(VerbAddObjectToGroup, 0, "group", KindName, "object", KindName),

	spec(VerbSetProperty1, 0, "target", KindName, "property", KindName,
		"v0", KindNumber),
	spec(VerbSetProperty2, 0, "target", KindName, "property", KindName,
		"v0", KindNumber, "v1", KindNumber),
	spec(VerbSetProperty3, 0, "target", KindName, "property", KindName,
		"v0", KindNumber, "v1", KindNumber, "v2", KindNumber),
	spec(VerbSetProperty4, 0, "target", KindName, "property", KindName,
		"v0", KindNumber, "v1", KindNumber, "v2", KindNumber, "v3", KindNumber),
	spec(VerbSetSampleProperty3, 0, "target", KindName, "property", KindName,
		"v0", KindNumber, "v1", KindNumber, "v2", KindNumber, "time", KindNumber),
	spec(VerbSetStringProperty, 0, "target", KindName, "property", KindName, "value", KindName),

	spec(VerbRunProcedure, 0, "procedure", KindName),
	spec(VerbRenderScene, 0, "renderer", KindName),
	spec(VerbSaveFrameBuffer, 0, "framebuffer", KindName, "path", KindPath),
	spec(VerbShowPropertyList, 0, "type", KindType),
	spec(VerbComment, 0, "text", KindText),
}

var specIndex = func() map[Verb]Spec {
	m := make(map[Verb]Spec, len(specs))
	for _, s := range specs {
		m[s.Verb] = s
	}
	return m
}()

// Lookup returns the argument Spec of a verb.
func Lookup(v Verb) (Spec, bool) {
	s, ok := specIndex[v]
	return s, ok
}

// Specs returns all verb specs in protocol order.
func Specs() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}
