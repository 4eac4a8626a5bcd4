package approvals

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gohub-app/gohub/internal/application/approval/usecases"
)

// importFile is the YAML layout accepted by "approvals import":
//
//	students:
//	  - registration_number: REG2024001
//	    student_name: Alice Smith
//	    is_paid: true
//	    payment_date: 2026-01-05T00:00:00Z
type importFile struct {
	Students []importEntry `yaml:"students"`
}

type importEntry struct {
	RegistrationNumber string     `yaml:"registration_number"`
	StudentName        string     `yaml:"student_name"`
	IsPaid             bool       `yaml:"is_paid"`
	PaymentDate        *time.Time `yaml:"payment_date"`
}

func parseImportFile(r io.Reader) ([]usecases.AddApprovalCommand, error) {
	var file importFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("import file is empty")
		}
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}
	if len(file.Students) == 0 {
		return nil, fmt.Errorf("import file lists no students")
	}

	cmds := make([]usecases.AddApprovalCommand, 0, len(file.Students))
	for _, s := range file.Students {
		cmds = append(cmds, usecases.AddApprovalCommand{
			RegistrationNumber: s.RegistrationNumber,
			StudentName:        s.StudentName,
			IsPaid:             s.IsPaid,
			PaymentDate:        s.PaymentDate,
		})
	}
	return cmds, nil
}
