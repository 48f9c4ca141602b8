package document_repo

import (
	"stockmark/internal/domain/documents/income"
	"stockmark/internal/infrastructure/storage/postgres"
)

const incomeTable = "incomes"

// IncomeRepo implements income.Repository.
type IncomeRepo struct {
	*BaseDocumentRepo[*income.Income, *income.WithCompany]
}

// NewIncomeRepo creates a new income repository.
func NewIncomeRepo(txm *postgres.TxManager) *IncomeRepo {
	return &IncomeRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*income.Income, *income.WithCompany](
			txm,
			incomeTable,
			"from_company_id",
			postgres.ExtractDBColumns[income.Income](),
			func() *income.Income { return &income.Income{} },
		),
	}
}

var _ income.Repository = (*IncomeRepo)(nil)
