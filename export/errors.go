// SPDX-License-Identifier: EPL-2.0

package export

import "errors"

var (
	ErrUnknownCompression = errors.New("unknown parquet compression")
	ErrNoBucket           = errors.New("s3 bucket is required")
	ErrShapeMismatch      = errors.New("records and features differ in length")
)
