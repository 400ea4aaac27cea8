package domain

// Operation names a protected action for authorization decisions.
type Operation string

const (
	OpReadSnapshot   Operation = "snapshot:read"
	OpCreateTestCase Operation = "test_case:create"
	OpPauseTestCase  Operation = "test_case:pause"
	OpResumeTestCase Operation = "test_case:resume"
	OpSubmitReport   Operation = "report:submit"
	OpCreateTemplate Operation = "template:create"
)

// AnyRole matches every authenticated role.
const AnyRole = "*"

// Policy maps each operation to the roles allowed to perform it.
// Operations missing from the policy are denied.
type Policy map[Operation][]string

// DefaultPolicy lets any authenticated identity call any operation.
func DefaultPolicy() Policy {
	return Policy{
		OpReadSnapshot:   {AnyRole},
		OpCreateTestCase: {AnyRole},
		OpPauseTestCase:  {AnyRole},
		OpResumeTestCase: {AnyRole},
		OpSubmitReport:   {AnyRole},
		OpCreateTemplate: {AnyRole},
	}
}

// Allows reports whether role may perform op. AnyRole also matches an
// authenticated identity whose stored role is empty.
func (p Policy) Allows(role string, op Operation) bool {
	for _, r := range p[op] {
		if r == AnyRole || r == role {
			return true
		}
	}
	return false
}
