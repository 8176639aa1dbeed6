package reports

import "errors"

var ErrDuplicateID = errors.New("report id already exists")
