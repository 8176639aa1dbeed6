package client

import (
	"fmt"

	"github.com/dmitrijs2005/mriscan/internal/common"
)

var ErrUnavailable = fmt.Errorf("%w: inference endpoint unavailable", common.ErrNetwork)
