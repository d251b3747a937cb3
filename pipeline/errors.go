// SPDX-License-Identifier: EPL-2.0

package pipeline

import "errors"

var ErrInvalidConfig = errors.New("invalid pipeline config")
