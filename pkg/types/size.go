package types

// SockSize enumerates the sizes a sock variant ships in.
type SockSize string

const (
	SockSizeS  SockSize = "S"
	SockSizeM  SockSize = "M"
	SockSizeLG SockSize = "LG"
	SockSizeXL SockSize = "XL"
)

func (s SockSize) IsValid() bool {
	switch s {
	case SockSizeS, SockSizeM, SockSizeLG, SockSizeXL:
		return true
	}
	return false
}

func (s SockSize) String() string {
	return string(s)
}

// AllSockSizes lists the valid sizes in display order.
func AllSockSizes() []SockSize {
	return []SockSize{SockSizeS, SockSizeM, SockSizeLG, SockSizeXL}
}
