// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"github.com/ash-chain/ashd/internal/logs"
)

// log is the package-wide logger shared by the resource accountant, the
// modified-entry index, the package selector, the coinbase builder, the
// template assembler and the broadcast coordinator.
var log = logs.Logger(logs.SubsystemAssembler)
