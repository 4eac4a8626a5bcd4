package approvals

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gohub-app/gohub/internal/application/approval/dto"
)

func TestParseImportFile(t *testing.T) {
	cmds, err := parseImportFile(strings.NewReader(`
students:
  - registration_number: REG2024001
    student_name: Alice Smith
    is_paid: true
    payment_date: 2026-01-05T00:00:00Z
  - registration_number: reg2024002
    student_name: Bob Jones
`))
	require.NoError(t, err)
	require.Len(t, cmds, 2)

	assert.Equal(t, "REG2024001", cmds[0].RegistrationNumber)
	assert.True(t, cmds[0].IsPaid)
	require.NotNil(t, cmds[0].PaymentDate)
	assert.True(t, cmds[0].PaymentDate.Equal(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)))

	assert.Equal(t, "reg2024002", cmds[1].RegistrationNumber)
	assert.False(t, cmds[1].IsPaid)
	assert.Nil(t, cmds[1].PaymentDate)
}

func TestParseImportFileErrors(t *testing.T) {
	tests := map[string]string{
		"empty":         "",
		"no students":   "students: []\n",
		"unknown field": "students:\n  - registration_number: REG2024001\n    grade: A\n",
		"not yaml":      "students: [\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseImportFile(strings.NewReader(body))
			assert.Error(t, err)
		})
	}
}

func TestWriteApprovals(t *testing.T) {
	paidOn := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	writeApprovals(&buf, []*dto.ApprovalResponse{
		{RegistrationNumber: "REG2024001", StudentName: "Alice Smith", IsPaid: true, PaymentDate: &paidOn},
		{RegistrationNumber: "REG2024002", StudentName: "Bob Jones"},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "REGISTRATION")
	assert.Contains(t, lines[1], "2026-01-05")
	assert.Contains(t, lines[2], "-")
}
