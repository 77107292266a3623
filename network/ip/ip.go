package ip

import (
	"host-literal/network"
)

type Addr interface {
	network.Addr

	Version() uint
}
