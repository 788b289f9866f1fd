package locks

import (
	"github.com/ash-chain/ashd/internal/logs"
	"github.com/ash-chain/ashd/util/panics"
)

var log = logs.Logger(logs.SubsystemUtil)
var spawn = panics.GoroutineWrapperFunc(log)
