package deferred

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ndefer/camera"
)

// ShadowBiasMatrix maps clip space [-1, 1] to texture space [0, 1] on all three axes
func ShadowBiasMatrix() gglm.Mat4 {
	return gglm.Mat4{
		Data: [4][4]float32{
			{0.5, 0, 0, 0},
			{0, 0.5, 0, 0},
			{0, 0, 0.5, 0},
			{0.5, 0.5, 0.5, 1},
		},
	}
}

// ShadowMVP returns bias * projection * view of the shadow camera
func ShadowMVP(shadowCam *camera.Camera) gglm.Mat4 {
	bias := ShadowBiasMatrix()
	return *bias.Mul(&shadowCam.ProjMat).Mul(&shadowCam.ViewMat)
}
