package domain

// Plan kinds sold through the gateway. Product plans raise a store's
// allowedProduct entitlement; store plans raise a user's allowedStores.
type PlanKind string

const (
	PlanKindProduct PlanKind = "product"
	PlanKindStore   PlanKind = "store"
)

// Plan is one purchasable subscription tier. Code is the gateway-side plan
// code and comes from configuration; everything else is fixed product policy.
type Plan struct {
	Name  string
	Kind  PlanKind
	Code  string
	Price Money
	// Entitlement is allowedProduct for product plans and allowedStores for
	// store plans.
	Entitlement int
}

// PlanCatalog resolves gateway plan codes back to plans. Codes are injected
// from config since they differ per Paystack account.
type PlanCatalog struct {
	plans []Plan
}

// ProductPlanCodes and StorePlanCodes carry the configured gateway codes,
// keyed by tier in ascending order.
type ProductPlanCodes struct {
	Product33  string
	Product73  string
	Product183 string
}

type StorePlanCodes struct {
	Free    string
	Basic   string
	Premium string
}

func NewPlanCatalog(product ProductPlanCodes, store StorePlanCodes) *PlanCatalog {
	return &PlanCatalog{plans: []Plan{
		{Name: "33 Products Plan", Kind: PlanKindProduct, Code: product.Product33, Price: MustParseMoney("69.00"), Entitlement: 33},
		{Name: "73 Products Plan", Kind: PlanKindProduct, Code: product.Product73, Price: MustParseMoney("159.00"), Entitlement: 73},
		{Name: "183 Products Plan", Kind: PlanKindProduct, Code: product.Product183, Price: MustParseMoney("250.00"), Entitlement: 183},
		{Name: "Free", Kind: PlanKindStore, Code: store.Free, Price: 0, Entitlement: 1},
		{Name: "Basic", Kind: PlanKindStore, Code: store.Basic, Price: MustParseMoney("149.00"), Entitlement: 3},
		{Name: "Premium", Kind: PlanKindStore, Code: store.Premium, Price: MustParseMoney("269.00"), Entitlement: 7},
	}}
}

// ByCode resolves a gateway plan code. Unknown codes return false.
func (c *PlanCatalog) ByCode(code string) (Plan, bool) {
	if code == "" {
		return Plan{}, false
	}
	for _, p := range c.plans {
		if p.Code == code {
			return p, true
		}
	}
	return Plan{}, false
}

// StorePlanByPrice resolves a store plan from a charged amount. Plain store
// payments carry no plan code, so the price is the only discriminator.
func (c *PlanCatalog) StorePlanByPrice(price Money) (Plan, bool) {
	for _, p := range c.plans {
		if p.Kind == PlanKindStore && p.Price == price {
			return p, true
		}
	}
	return Plan{}, false
}

// ByName resolves a plan by its display name, used when initializing a
// subscription payment.
func (c *PlanCatalog) ByName(name string) (Plan, bool) {
	for _, p := range c.plans {
		if p.Name == name {
			return p, true
		}
	}
	return Plan{}, false
}
