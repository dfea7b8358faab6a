package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casefile/internal/casefile/models"
)

func balancedProduct() *models.Product {
	return &models.Product{
		ID:           "PROD1234",
		Type:         "Yape",
		Investigated: "100",
		Loss:         "40",
		Failure:      "30",
		Contingency:  "20",
		Recovered:    "10",
		Paid:         "50",
	}
}

func TestProductMoneyBalanced(t *testing.T) {
	p := balancedProduct()
	assert.Empty(t, ProductMoney(p))
	assert.True(t, p.Armed)
	assert.Equal(t, "100.00", p.Investigated)
	assert.Equal(t, "40.00", p.Loss)
}

func TestProductMoneyUnarmedStaysSilent(t *testing.T) {
	p := &models.Product{ID: "PROD1234", Type: "Yape"}
	assert.Empty(t, ProductMoney(p))
	assert.False(t, p.Armed)
}

func TestProductMoneyPerturbationYieldsOneAggregateError(t *testing.T) {
	fields := []func(*models.Product){
		func(p *models.Product) { p.Loss = "40.01" },
		func(p *models.Product) { p.Failure = "30.01" },
		func(p *models.Product) { p.Contingency = "20.01" },
		func(p *models.Product) { p.Recovered = "10.01" },
	}
	for _, perturb := range fields {
		p := balancedProduct()
		perturb(p)
		msgs := ProductMoney(p)
		require.Len(t, msgs, 1)
		assert.Contains(t, msgs[0], "add up to")
	}
}

func TestProductMoneyFieldErrorSuppressesAggregates(t *testing.T) {
	p := balancedProduct()
	p.Loss = "not-a-number"
	msgs := ProductMoney(p)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "must be a valid number")
}

func TestProductMoneyBounds(t *testing.T) {
	p := balancedProduct()
	p.Recovered = "150"
	msgs := ProductMoney(p)
	assert.Contains(t, msgs, "The recovered amount cannot exceed the investigated amount.")

	p = balancedProduct()
	p.Paid = "100.01"
	msgs = ProductMoney(p)
	require.Len(t, msgs, 1)
	assert.Equal(t, "The paid amount cannot exceed the investigated amount.", msgs[0])
}

func TestProductMoneyCreditFamilyContingency(t *testing.T) {
	// The aggregate sum is satisfied, the family rule still fires.
	p := &models.Product{
		ID:           "1234567890123",
		Type:         "Crédito Pyme",
		Investigated: "100",
		Loss:         "50",
		Failure:      "0",
		Contingency:  "50",
		Recovered:    "0",
		Paid:         "0",
	}
	msgs := ProductMoney(p)
	require.Len(t, msgs, 1)
	assert.Equal(t, "For credit and card products the contingency amount must equal the investigated amount.", msgs[0])

	p.Loss = "0"
	p.Contingency = "100"
	assert.Empty(t, ProductMoney(p))
}

func TestCaseTotals(t *testing.T) {
	a := balancedProduct()
	b := balancedProduct()
	b.ID = "PROD5678"
	assert.Empty(t, CaseTotals([]*models.Product{a, b}))

	b.Investigated = "100.01"
	msg := CaseTotals([]*models.Product{a, b})
	assert.Contains(t, msg, "200.00")
	assert.Contains(t, msg, "200.01")

	// A product with a malformed field is left out of both sums.
	b.Investigated = "garbage"
	assert.Empty(t, CaseTotals([]*models.Product{a, b}))
}

func TestLossComponentsPositive(t *testing.T) {
	p := &models.Product{Loss: "0.00", Failure: "", Contingency: "0"}
	assert.False(t, LossComponentsPositive(p))
	p.Contingency = "0.01"
	assert.True(t, LossComponentsPositive(p))
}
