// SPDX-License-Identifier: EPL-2.0

package dataset

import "errors"

var (
	ErrClassListingChanged = errors.New("class folder listing changed between enumerations")
	ErrUnsupportedFormat   = errors.New("unsupported audio format")
	ErrNoClasses           = errors.New("no class folders found")
)
