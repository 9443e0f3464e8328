package birch

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// CpuSpriteBatch is a SpriteBatch that changes its transform matrix without
// flushing. While drawing, a new transform is applied to vertices on the
// CPU as they are written, so many small transforms (one per scene node,
// say) can share one draw call. Call FlushAndSyncTransformMatrix to make
// the requested transform resident on the GPU again.
//
// Transforms are treated as 2D affine: only the x/y scale, shear and
// translation slots are compared and applied.
type CpuSpriteBatch struct {
	*SpriteBatch

	virtualMatrix          mgl32.Mat4
	adjustAffine           Affine2
	haveIdentityRealMatrix bool
	adjustNeeded           bool
}

// NewCpuSpriteBatch creates a CPU-adjusting batch drawing through backend.
func NewCpuSpriteBatch(backend Backend, cfg BatchConfig) (*CpuSpriteBatch, error) {
	b, err := NewSpriteBatch(backend, cfg)
	if err != nil {
		return nil, err
	}
	return &CpuSpriteBatch{
		SpriteBatch:            b,
		virtualMatrix:          mgl32.Ident4(),
		adjustAffine:           IdentityAffine(),
		haveIdentityRealMatrix: true,
	}, nil
}

// FlushAndSyncTransformMatrix flushes buffered quads and, if a transform
// is pending, uploads it as the resident matrix. It returns
// ErrSingularMatrix, leaving the adjustment in place, if the pending
// transform cannot be inverted.
func (b *CpuSpriteBatch) FlushAndSyncTransformMatrix() error {
	b.Flush()
	if !b.adjustNeeded {
		return nil
	}
	identity := Mat4IsIdt2D(b.virtualMatrix)
	if !identity && b.virtualMatrix.Det() == 0 {
		return fmt.Errorf("birch: sync transform matrix: %w", ErrSingularMatrix)
	}
	b.haveIdentityRealMatrix = identity
	b.setAdjustNeeded(false)
	b.SpriteBatch.SetTransformMatrix(b.virtualMatrix)
	return nil
}

// TransformMatrix returns the transform most recently requested, which may
// not yet be resident.
func (b *CpuSpriteBatch) TransformMatrix() mgl32.Mat4 {
	if b.adjustNeeded {
		return b.virtualMatrix
	}
	return b.SpriteBatch.TransformMatrix()
}

// SetTransformMatrix requests a new transform. Outside a drawing session it
// becomes resident immediately. While drawing, the batch keeps the resident
// matrix and adjusts subsequent vertices instead; if the resident matrix
// cannot be inverted it falls back to flushing.
func (b *CpuSpriteBatch) SetTransformMatrix(transform mgl32.Mat4) {
	resident := b.SpriteBatch.TransformMatrix()
	if Mat4Equal2D(resident, transform) {
		b.setAdjustNeeded(false)
		return
	}

	if !b.drawing {
		b.setAdjustNeeded(false)
		Mat4SetAsAffine(&b.SpriteBatch.transform, transform)
		b.haveIdentityRealMatrix = Mat4IsIdt2D(b.SpriteBatch.transform)
		return
	}

	if b.haveIdentityRealMatrix {
		b.adjustAffine.SetFromMat4(transform)
	} else {
		var inv Affine2
		inv.SetFromMat4(resident)
		if err := inv.Invert(); err != nil {
			b.setAdjustNeeded(false)
			b.SpriteBatch.SetTransformMatrix(transform)
			b.haveIdentityRealMatrix = Mat4IsIdt2D(transform)
			return
		}
		var requested Affine2
		requested.SetFromMat4(transform)
		b.adjustAffine = *inv.Mul(requested)
	}
	Mat4SetAsAffine(&b.virtualMatrix, transform)
	b.setAdjustNeeded(true)
}

// AdjustNeeded reports whether drawn vertices are currently transformed on
// the CPU.
func (b *CpuSpriteBatch) AdjustNeeded() bool { return b.adjustNeeded }

func (b *CpuSpriteBatch) setAdjustNeeded(v bool) {
	b.adjustNeeded = v
	if v {
		b.SpriteBatch.adjust = &b.adjustAffine
	} else {
		b.SpriteBatch.adjust = nil
	}
}
