package protocol

import (
	"strings"
	"testing"

	"github.com/matzehuels/fjscene/pkg/errors"
)

func TestScanner(t *testing.T) {
	script := `# 1 dragon with 1 point light

OpenPlugin PlasticShader
NewCamera   cam1 PerspectiveCamera
	SetProperty3 cam1 translate 0 2.0 6
#plugins
RenderScene ren1
`
	cmds, err := Decode(strings.NewReader(script))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	want := []string{
		"# 1 dragon with 1 point light",
		"OpenPlugin PlasticShader",
		"NewCamera cam1 PerspectiveCamera",
		"SetProperty3 cam1 translate 0 2 6",
		"# plugins",
		"RenderScene ren1",
	}
	if len(cmds) != len(want) {
		t.Fatalf("got %d commands, want %d", len(cmds), len(want))
	}
	for i, c := range cmds {
		if c.String() != want[i] {
			t.Errorf("command %d = %q, want %q", i, c.String(), want[i])
		}
	}
}

func TestScannerReportsLine(t *testing.T) {
	script := "NewCamera cam1 PerspectiveCamera\n\nNewLight light1\n"
	sc := NewScanner(strings.NewReader(script))

	n := 0
	for sc.Scan() {
		n++
	}
	if n != 1 {
		t.Errorf("scanned %d commands before error, want 1", n)
	}

	err := sc.Err()
	if err == nil {
		t.Fatal("Err() = nil, want error")
	}
	if !errors.Is(err, errors.ErrCodeMalformedInvocation) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeMalformedInvocation)
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error %q does not mention line 3", err)
	}
	if sc.Scan() {
		t.Error("Scan() after error = true, want false")
	}
}

func TestScannerUnknownVerb(t *testing.T) {
	_, err := Decode(strings.NewReader("Explode now\n"))
	if err == nil || !strings.Contains(err.Error(), "unknown verb") {
		t.Errorf("Decode() error = %v, want unknown verb", err)
	}
}

func TestScannerEnumSymbols(t *testing.T) {
	script := `SetProperty1 dragon1 transform_order ORDER_TRS
SetProperty1 dragon1 rotate_order ORDER_YZX
SetProperty1 ren1 sampler_type ADAPTIVE_GRID_SAMPLER
`
	cmds, err := Decode(strings.NewReader(script))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	want := []string{"ORDER_TRS", "ORDER_YZX", "ADAPTIVE_GRID_SAMPLER"}
	if len(cmds) != len(want) {
		t.Fatalf("got %d commands, want %d", len(cmds), len(want))
	}
	for i, c := range cmds {
		if got := c.Arg(2); got != want[i] {
			t.Errorf("command %d value = %q, want %q", i, got, want[i])
		}
	}
}
