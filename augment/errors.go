// SPDX-License-Identifier: EPL-2.0

package augment

import "errors"

var (
	ErrShapeMismatch = errors.New("waveform lengths differ")
	ErrNonFinite     = errors.New("transform produced non-finite samples")
	ErrInvalidRate   = errors.New("invalid stretch rate")
	ErrInvalidRange  = errors.New("invalid parameter range")
	ErrInvalidConfig = errors.New("invalid augmentation config")
)
