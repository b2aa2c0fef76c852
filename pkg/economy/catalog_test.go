package economy_test

import (
	"errors"
	"testing"

	"github.com/rayomarblezh-dev/mundo-mitico-sub000/pkg/economy"
)

func TestNewCatalogRejectsBadDescriptors(test *testing.T) {
	test.Parallel()
	valid := economy.ItemDescriptor{Kind: economy.ItemHada, Name: "Hada", Price: 1, Category: economy.CategoryCreature}
	cases := []struct {
		name        string
		descriptors []economy.ItemDescriptor
	}{
		{name: "empty", descriptors: nil},
		{name: "blank_kind", descriptors: []economy.ItemDescriptor{{Name: "X", Price: 1, Category: economy.CategoryRelic}}},
		{name: "no_name", descriptors: []economy.ItemDescriptor{{Kind: "x", Price: 1, Category: economy.CategoryRelic}}},
		{name: "zero_price", descriptors: []economy.ItemDescriptor{{Kind: "x", Name: "X", Category: economy.CategoryRelic}}},
		{name: "negative_yield", descriptors: []economy.ItemDescriptor{{Kind: "x", Name: "X", Price: 1, DailyYield: -1, Category: economy.CategoryRelic}}},
		{name: "negative_lifetime", descriptors: []economy.ItemDescriptor{{Kind: "x", Name: "X", Price: 1, LifetimeDays: -1, Category: economy.CategoryRelic}}},
		{name: "no_category", descriptors: []economy.ItemDescriptor{{Kind: "x", Name: "X", Price: 1}}},
		{name: "duplicate", descriptors: []economy.ItemDescriptor{valid, valid}},
	}
	for _, testCase := range cases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			if _, err := economy.NewCatalog(testCase.descriptors); !errors.Is(err, economy.ErrInvalidCatalog) {
				test.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestDefaultCatalogLookups(test *testing.T) {
	test.Parallel()
	catalog := economy.DefaultCatalog()

	descriptor, err := catalog.Lookup(economy.ItemDragon)
	if err != nil {
		test.Fatalf("lookup dragon: %v", err)
	}
	if !descriptor.Expires() {
		test.Fatalf("dragon must be time-limited")
	}
	totem, err := catalog.Lookup(economy.ItemTotemNFT)
	if err != nil {
		test.Fatalf("lookup totem: %v", err)
	}
	if totem.Expires() {
		test.Fatalf("totem must be permanent")
	}
	if _, err := catalog.Lookup(economy.ItemKind("unicornio")); !errors.Is(err, economy.ErrInvalidItemKind) {
		test.Fatalf("expected ErrInvalidItemKind, got %v", err)
	}

	for _, descriptor := range catalog.YieldBearing() {
		if descriptor.DailyYield <= 0 {
			test.Fatalf("%s listed as yield-bearing with yield %d", descriptor.Kind, descriptor.DailyYield)
		}
	}
	for _, descriptor := range catalog.Expiring() {
		if descriptor.LifetimeDays <= 0 {
			test.Fatalf("%s listed as expiring with lifetime %d", descriptor.Kind, descriptor.LifetimeDays)
		}
	}
}
