// SPDX-License-Identifier: EPL-2.0

package feature

import "errors"

var (
	ErrInvalidShape = errors.New("invalid feature shape")
	ErrNonFinite    = errors.New("waveform holds non-finite samples")
)
