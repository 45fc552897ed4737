package book

type Status string

const (
	StatusAvailable Status = "available"
	StatusExchanged Status = "exchanged"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusExchanged:
		return true
	default:
		return false
	}
}
