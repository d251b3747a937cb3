// SPDX-License-Identifier: EPL-2.0

package background

import "errors"

var (
	ErrEmptyPool          = errors.New("background pool has no clips")
	ErrInsufficientLength = errors.New("no background clip is long enough")
)
