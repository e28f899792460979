package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/fjscene/pkg/errors"
)

func TestNewAndString(t *testing.T) {
	tests := []struct {
		name string
		verb Verb
		args []string
		want string
	}{
		{"plugin", VerbOpenPlugin, []string{"PlasticShader.so"}, "OpenPlugin PlasticShader.so"},
		{"camera", VerbNewCamera, []string{"cam1", "PerspectiveCamera"}, "NewCamera cam1 PerspectiveCamera"},
		{"volume", VerbNewVolume, []string{"vol1"}, "NewVolume vol1"},
		{"renderer without accelerator", VerbNewRenderer, []string{"ren1"}, "NewRenderer ren1"},
		{"instance with accelerator", VerbNewObjectInstance, []string{"dragon1", "dragon_mesh"}, "NewObjectInstance dragon1 dragon_mesh"},
		{"assign shader", VerbAssignShader, []string{"dragon1", "DEFAULT_SHADING_GROUP", "dragon_shader"}, "AssignShader dragon1 DEFAULT_SHADING_GROUP dragon_shader"},
		{"assign camera", VerbAssignCamera, []string{"ren1", "cam1"}, "AssignCamera ren1 cam1"},
		{"property numbers", VerbSetProperty3, []string{"light1", "translate", "-10", "12.0", "10.50"}, "SetProperty3 light1 translate -10 12 10.5"},
		{"sample property", VerbSetSampleProperty3, []string{"cam1", "translate", "0", "2", "5.3", "1"}, "SetSampleProperty3 cam1 translate 0 2 5.3 1"},
		{"string property", VerbSetStringProperty, []string{"proc1", "filepath", "../../ply/bunny.ply"}, "SetStringProperty proc1 filepath ../../ply/bunny.ply"},
		{"comment", VerbComment, []string{"1 dragon with 1 point light"}, "# 1 dragon with 1 point light"},
		{"empty comment", VerbComment, []string{""}, "#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := New(tt.verb, tt.args...)
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			if got := cmd.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if cmd.Verb() != tt.verb {
				t.Errorf("Verb() = %v, want %v", cmd.Verb(), tt.verb)
			}
		})
	}
}

func TestNewRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		verb Verb
		args []string
	}{
		{"unknown verb", Verb("DeleteEverything"), []string{"x"}},
		{"too few", VerbNewCamera, []string{"cam1"}},
		{"too many", VerbNewVolume, []string{"vol1", "extra"}},
		{"optional overflow", VerbNewRenderer, []string{"ren1", "grid", "extra"}},
		{"whitespace name", VerbNewCamera, []string{"my cam", "PerspectiveCamera"}},
		{"newline in path", VerbNewMesh, []string{"m", "a\n.mesh"}},
		{"not a number", VerbSetProperty1, []string{"ren1", "gamma", "bright"}},
		{"nan", VerbSetProperty1, []string{"ren1", "gamma", "NaN"}},
		{"inf", VerbSetProperty1, []string{"ren1", "gamma", "+Inf"}},
		{"newline comment", VerbComment, []string{"a\nSetProperty1 x y 1"}},
		{"empty name", VerbRenderScene, []string{""}},
		{"lowercase symbol", VerbSetProperty1, []string{"obj1", "transform_order", "order_srt"}},
		{"corrected sampler spelling", VerbSetProperty1, []string{"ren1", "sampler_type", "FIXED_GRID_SAMPLER"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.verb, tt.args...)
			if err == nil {
				t.Fatal("New() expected error")
			}
			if !errors.Is(err, errors.ErrCodeMalformedInvocation) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeMalformedInvocation)
			}
		})
	}
}

func TestNewAcceptsEnumSymbols(t *testing.T) {
	tests := []struct {
		verb Verb
		args []string
		want string
	}{
		{VerbSetProperty1, []string{"obj1", "transform_order", "ORDER_SRT"}, "SetProperty1 obj1 transform_order ORDER_SRT"},
		{VerbSetProperty1, []string{"obj1", "transform_order", "ORDER_TSR"}, "SetProperty1 obj1 transform_order ORDER_TSR"},
		{VerbSetProperty1, []string{"obj1", "rotate_order", "ORDER_ZYX"}, "SetProperty1 obj1 rotate_order ORDER_ZYX"},
		{VerbSetProperty1, []string{"ren1", "sampler_type", "FIXED_GRID_SAMPER"}, "SetProperty1 ren1 sampler_type FIXED_GRID_SAMPER"},
		{VerbSetProperty1, []string{"ren1", "sampler_type", "ADAPTIVE_GRID_SAMPLER"}, "SetProperty1 ren1 sampler_type ADAPTIVE_GRID_SAMPLER"},
		{VerbSetProperty2, []string{"obj1", "order", "ORDER_XYZ", "1.50"}, "SetProperty2 obj1 order ORDER_XYZ 1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cmd, err := New(tt.verb, tt.args...)
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			if got := cmd.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustNew() did not panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, errors.ErrCodeMalformedInvocation) {
			t.Errorf("panic value = %v, want MALFORMED_INVOCATION error", r)
		}
	}()
	MustNew(VerbAssignShader, "only", "two")
}

func TestCommentTruncated(t *testing.T) {
	long := strings.Repeat("x", 200)
	cmd := MustNew(VerbComment, long)
	if got := len(cmd.Arg(0)); got != MaxCommentLength {
		t.Errorf("comment length = %d, want %d", got, MaxCommentLength)
	}

	multibyte := strings.Repeat("é", 130)
	cmd = MustNew(VerbComment, multibyte)
	if got := len([]rune(cmd.Arg(0))); got != MaxCommentLength {
		t.Errorf("comment rune length = %d, want %d", got, MaxCommentLength)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.0, "0"},
		{1, "1"},
		{640, "640"},
		{.5, "0.5"},
		{-10, "-10"},
		{5.3, "5.3"},
		{0.1 + 0.2, "0.30000000000000004"},
		{1e21, "1e+21"},
		{1e-7, "1e-07"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSerializationDeterministic(t *testing.T) {
	args := []string{"dragon_shader", "diffuse", ".1", "0.40", "0"}
	a := MustNew(VerbSetProperty3, args...).String()
	b := MustNew(VerbSetProperty3, args...).String()
	if a != b {
		t.Errorf("serialization differs: %q vs %q", a, b)
	}
	if a != "SetProperty3 dragon_shader diffuse 0.1 0.4 0" {
		t.Errorf("String() = %q", a)
	}
}

func TestArgsReturnsCopy(t *testing.T) {
	cmd := MustNew(VerbNewCamera, "cam1", "PerspectiveCamera")
	args := cmd.Args()
	args[0] = "changed"
	if cmd.Arg(0) != "cam1" {
		t.Errorf("Arg(0) = %q after mutating Args(), want cam1", cmd.Arg(0))
	}
}

func TestEncode(t *testing.T) {
	cmds := []Command{
		MustNew(VerbNewRenderer, "ren1"),
		MustNew(VerbRenderScene, "ren1"),
	}

	var buf bytes.Buffer
	if err := Encode(&buf, cmds); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := "NewRenderer ren1\nRenderScene ren1\n"
	if buf.String() != want {
		t.Errorf("Encode() = %q, want %q", buf.String(), want)
	}
	if got := EncodeString(cmds); got != want {
		t.Errorf("EncodeString() = %q, want %q", got, want)
	}
}

func TestSpecs(t *testing.T) {
	seen := map[Verb]bool{}
	for _, s := range Specs() {
		if seen[s.Verb] {
			t.Errorf("duplicate spec for %s", s.Verb)
		}
		seen[s.Verb] = true
		if len(s.Labels) != len(s.Args) {
			t.Errorf("%s: %d labels for %d args", s.Verb, len(s.Labels), len(s.Args))
		}
	}

	s, ok := Lookup(VerbNewObjectInstance)
	if !ok {
		t.Fatal("Lookup(NewObjectInstance) not found")
	}
	if s.MinArgs() != 1 || s.MaxArgs() != 2 {
		t.Errorf("NewObjectInstance arity = %d..%d, want 1..2", s.MinArgs(), s.MaxArgs())
	}
	if got := s.Usage(); got != "NewObjectInstance name [accelerator]" {
		t.Errorf("Usage() = %q", got)
	}
}
