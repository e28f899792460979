package scene

import (
	"github.com/matzehuels/fjscene/pkg/errors"
	"github.com/matzehuels/fjscene/pkg/protocol"
)

func num(v float64) string { return protocol.FormatNumber(v) }

// Comment adds a comment line. Text beyond 128 characters is dropped.
func (b *Builder) Comment(text string) {
	b.emit(protocol.VerbComment, text)
}

// OpenPlugin opens a shader or procedure plugin. The platform library
// extension (.so, .dll) is appended when missing.
func (b *Builder) OpenPlugin(path string) {
	b.emit(protocol.VerbOpenPlugin, path)
}

// ShowPropertyList asks the renderer to print the properties of a type
// (ObjectInstance, Volume, ...) or of an opened plugin.
func (b *Builder) ShowPropertyList(typeName string) {
	b.emit(protocol.VerbShowPropertyList, typeName)
}

// =============================================================================
// Creation
// =============================================================================

func (b *Builder) NewCamera(name, typeName string) {
	b.emit(protocol.VerbNewCamera, name, typeName)
}

func (b *Builder) NewLight(name, typeName string) {
	b.emit(protocol.VerbNewLight, name, typeName)
}

func (b *Builder) NewShader(name, typeName string) {
	b.emit(protocol.VerbNewShader, name, typeName)
}

func (b *Builder) NewProcedure(name, typeName string) {
	b.emit(protocol.VerbNewProcedure, name, typeName)
}

// NewTexture loads a texture. .hdr and .jpg files are converted to .mip
// before rendering.
func (b *Builder) NewTexture(name, path string) {
	b.emit(protocol.VerbNewTexture, name, path)
}

// NewMesh loads a mesh. .ply and .obj files are converted to .mesh before
// rendering.
func (b *Builder) NewMesh(name, path string) {
	b.emit(protocol.VerbNewMesh, name, path)
}

func (b *Builder) NewCurve(name, path string) {
	b.emit(protocol.VerbNewCurve, name, path)
}

func (b *Builder) NewPointCloud(name, path string) {
	b.emit(protocol.VerbNewPointCloud, name, path)
}

func (b *Builder) NewVolume(name string) {
	b.emit(protocol.VerbNewVolume, name)
}

func (b *Builder) NewTurbulence(name string) {
	b.emit(protocol.VerbNewTurbulence, name)
}

func (b *Builder) NewObjectGroup(name string) {
	b.emit(protocol.VerbNewObjectGroup, name)
}

// NewFrameBuffer creates a framebuffer with a channel layout such as "rgba".
func (b *Builder) NewFrameBuffer(name, channels string) {
	b.emit(protocol.VerbNewFrameBuffer, name, channels)
}

// NewRenderer creates a renderer. The accelerator is optional.
func (b *Builder) NewRenderer(name string, accelerator ...string) {
	b.emit(protocol.VerbNewRenderer, append([]string{name}, accelerator...)...)
}

// NewObjectInstance creates an instance of a mesh, curve, point cloud or
// volume accelerator. The accelerator is optional.
func (b *Builder) NewObjectInstance(name string, accelerator ...string) {
	b.emit(protocol.VerbNewObjectInstance, append([]string{name}, accelerator...)...)
}

// =============================================================================
// Assignment
// =============================================================================

func (b *Builder) AssignShader(object, shadingGroup, shader string) {
	b.emit(protocol.VerbAssignShader, object, shadingGroup, shader)
}

func (b *Builder) AssignTexture(target, prop, texture string) {
	b.emit(protocol.VerbAssignTexture, target, prop, texture)
}

func (b *Builder) AssignCamera(renderer, camera string) {
	b.emit(protocol.VerbAssignCamera, renderer, camera)
}

func (b *Builder) AssignFrameBuffer(renderer, framebuffer string) {
	b.emit(protocol.VerbAssignFrameBuffer, renderer, framebuffer)
}

func (b *Builder) AssignObjectGroup(target, prop, group string) {
	b.emit(protocol.VerbAssignObjectGroup, target, prop, group)
}

func (b *Builder) AssignTurbulence(target, prop, turbulence string) {
	b.emit(protocol.VerbAssignTurbulence, target, prop, turbulence)
}

func (b *Builder) AssignVolume(target, prop, volume string) {
	b.emit(protocol.VerbAssignVolume, target, prop, volume)
}

func (b *Builder) AssignMesh(target, prop, mesh string) {
	b.emit(protocol.VerbAssignMesh, target, prop, mesh)
}

func (b *Builder) AddObjectToGroup(group, object string) {
	b.emit(protocol.VerbAddObjectToGroup, group, object)
}

// =============================================================================
// Properties
// =============================================================================

func (b *Builder) SetProperty1(target, prop string, v0 float64) {
	b.emit(protocol.VerbSetProperty1, target, prop, num(v0))
}

func (b *Builder) SetProperty2(target, prop string, v0, v1 float64) {
	b.emit(protocol.VerbSetProperty2, target, prop, num(v0), num(v1))
}

func (b *Builder) SetProperty3(target, prop string, v0, v1, v2 float64) {
	b.emit(protocol.VerbSetProperty3, target, prop, num(v0), num(v1), num(v2))
}

func (b *Builder) SetProperty4(target, prop string, v0, v1, v2, v3 float64) {
	b.emit(protocol.VerbSetProperty4, target, prop, num(v0), num(v1), num(v2), num(v3))
}

// SetSampleProperty3 sets a vector property at a point in time; several
// samples of the same property give motion blur.
func (b *Builder) SetSampleProperty3(target, prop string, v0, v1, v2, time float64) {
	b.emit(protocol.VerbSetSampleProperty3, target, prop, num(v0), num(v1), num(v2), num(time))
}

// SetEnumProperty sets a property to a named constant such as ORDER_SRT
// or ADAPTIVE_GRID_SAMPLER.
func (b *Builder) SetEnumProperty(target, prop, symbol string) {
	if !protocol.IsSymbol(symbol) {
		panic(errors.New(errors.ErrCodeMalformedInvocation, "%q is not a property constant", symbol))
	}
	b.emit(protocol.VerbSetProperty1, target, prop, symbol)
}

func (b *Builder) SetStringProperty(target, prop, value string) {
	b.emit(protocol.VerbSetStringProperty, target, prop, value)
}

// =============================================================================
// Control
// =============================================================================

func (b *Builder) RunProcedure(procedure string) {
	b.emit(protocol.VerbRunProcedure, procedure)
}

func (b *Builder) RenderScene(renderer string) {
	b.emit(protocol.VerbRenderScene, renderer)
}

// SaveFrameBuffer writes a framebuffer to path. A .exr path is rendered to
// an intermediate .fb file and converted after the renderer exits.
func (b *Builder) SaveFrameBuffer(framebuffer, path string) {
	b.emit(protocol.VerbSaveFrameBuffer, framebuffer, path)
}
