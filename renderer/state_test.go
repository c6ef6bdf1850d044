package renderer

import "testing"

func TestTextureFormatClasses(t *testing.T) {

	for _, f := range []TextureFormat{TextureFormat_RGBA8, TextureFormat_RGBA16F, TextureFormat_RGBA32F} {
		if !f.IsColorFormat() || f.IsDepthFormat() {
			t.Errorf("%s should be a color format only", f)
		}
	}

	if !TextureFormat_DepthF32.IsDepthFormat() || TextureFormat_DepthF32.IsColorFormat() {
		t.Error("DepthF32 should be a depth format only")
	}

	if TextureFormat_Unknown.IsColorFormat() || TextureFormat_Unknown.IsDepthFormat() {
		t.Error("unknown format should be neither color nor depth")
	}
}

func TestErrorMessages(t *testing.T) {

	err := &ProgramError{Op: "set uniform", Name: "lightType", Log: "uniform not found"}
	if err.Error() != "program set uniform of 'lightType' failed: uniform not found" {
		t.Errorf("unexpected message: %s", err.Error())
	}

	texErr := &TextureError{Width: 4, Height: 2, Format: TextureFormat_RGBA16F, Reason: "out of memory"}
	if texErr.Error() != "failed to create 4x2 RGBA16F texture: out of memory" {
		t.Errorf("unexpected message: %s", texErr.Error())
	}
}
