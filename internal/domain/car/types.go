package car

type Status string

const (
	StatusAvailable Status = "available"
	StatusRetired   Status = "retired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusRetired:
		return true
	default:
		return false
	}
}
