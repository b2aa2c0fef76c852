package economy

import (
	"fmt"
	"strings"
)

// ItemKind names a catalog item.
type ItemKind string

// Creature and relic kinds shipped with the game.
const (
	ItemHada     ItemKind = "hada"
	ItemDuende   ItemKind = "duende"
	ItemGolem    ItemKind = "golem"
	ItemGrifo    ItemKind = "grifo"
	ItemDragon   ItemKind = "dragon"
	ItemFenix    ItemKind = "fenix"
	ItemTotemNFT ItemKind = "totem-nft"
	ItemCofre    ItemKind = "cofre-mitico"
)

// Item categories.
const (
	CategoryCreature = "criatura"
	CategoryNFT      = "nft"
	CategoryRelic    = "reliquia"
)

// String returns the stored representation.
func (kind ItemKind) String() string {
	return string(kind)
}

// ItemDescriptor is the static definition of a purchasable item.
type ItemDescriptor struct {
	Kind         ItemKind
	Name         string
	Price        Amount
	DailyYield   Amount
	LifetimeDays int
	Category     string
}

// Expires reports whether the item is time-limited.
func (descriptor ItemDescriptor) Expires() bool {
	return descriptor.LifetimeDays > 0
}

// Catalog is a validated read-only lookup table of item descriptors.
type Catalog struct {
	byKind map[ItemKind]ItemDescriptor
	kinds  []ItemKind
}

// NewCatalog validates descriptors and builds the lookup table.
func NewCatalog(descriptors []ItemDescriptor) (*Catalog, error) {
	if len(descriptors) == 0 {
		return nil, fmt.Errorf("%w: no descriptors", ErrInvalidCatalog)
	}
	byKind := make(map[ItemKind]ItemDescriptor, len(descriptors))
	kinds := make([]ItemKind, 0, len(descriptors))
	for _, descriptor := range descriptors {
		if strings.TrimSpace(string(descriptor.Kind)) == "" {
			return nil, fmt.Errorf("%w: empty kind", ErrInvalidCatalog)
		}
		if strings.TrimSpace(descriptor.Name) == "" {
			return nil, fmt.Errorf("%w: %s has no display name", ErrInvalidCatalog, descriptor.Kind)
		}
		if descriptor.Price <= 0 {
			return nil, fmt.Errorf("%w: %s has non-positive price", ErrInvalidCatalog, descriptor.Kind)
		}
		if descriptor.DailyYield < 0 {
			return nil, fmt.Errorf("%w: %s has negative yield", ErrInvalidCatalog, descriptor.Kind)
		}
		if descriptor.LifetimeDays < 0 {
			return nil, fmt.Errorf("%w: %s has negative lifetime", ErrInvalidCatalog, descriptor.Kind)
		}
		if strings.TrimSpace(descriptor.Category) == "" {
			return nil, fmt.Errorf("%w: %s has no category", ErrInvalidCatalog, descriptor.Kind)
		}
		if _, exists := byKind[descriptor.Kind]; exists {
			return nil, fmt.Errorf("%w: duplicate kind %s", ErrInvalidCatalog, descriptor.Kind)
		}
		byKind[descriptor.Kind] = descriptor
		kinds = append(kinds, descriptor.Kind)
	}
	return &Catalog{byKind: byKind, kinds: kinds}, nil
}

// Lookup returns the descriptor for a kind.
func (catalog *Catalog) Lookup(kind ItemKind) (ItemDescriptor, error) {
	descriptor, found := catalog.byKind[kind]
	if !found {
		return ItemDescriptor{}, fmt.Errorf("%w: %q", ErrInvalidItemKind, kind)
	}
	return descriptor, nil
}

// Kinds returns all kinds in declaration order.
func (catalog *Catalog) Kinds() []ItemKind {
	out := make([]ItemKind, len(catalog.kinds))
	copy(out, catalog.kinds)
	return out
}

// YieldBearing returns descriptors with a positive daily yield.
func (catalog *Catalog) YieldBearing() []ItemDescriptor {
	out := make([]ItemDescriptor, 0, len(catalog.kinds))
	for _, kind := range catalog.kinds {
		descriptor := catalog.byKind[kind]
		if descriptor.DailyYield > 0 {
			out = append(out, descriptor)
		}
	}
	return out
}

// Expiring returns descriptors with a finite lifetime.
func (catalog *Catalog) Expiring() []ItemDescriptor {
	out := make([]ItemDescriptor, 0, len(catalog.kinds))
	for _, kind := range catalog.kinds {
		descriptor := catalog.byKind[kind]
		if descriptor.Expires() {
			out = append(out, descriptor)
		}
	}
	return out
}

// DefaultCatalog returns the creatures and relics of Mundo Mítico.
// Prices and yields are nanotons.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog([]ItemDescriptor{
		{Kind: ItemHada, Name: "Hada", Price: 350_000_000, DailyYield: 7_000_000, LifetimeDays: 45, Category: CategoryCreature},
		{Kind: ItemDuende, Name: "Duende", Price: 750_000_000, DailyYield: 16_000_000, LifetimeDays: 45, Category: CategoryCreature},
		{Kind: ItemGolem, Name: "Gólem", Price: 1_500_000_000, DailyYield: 34_000_000, LifetimeDays: 60, Category: CategoryCreature},
		{Kind: ItemGrifo, Name: "Grifo", Price: 3_000_000_000, DailyYield: 72_000_000, LifetimeDays: 60, Category: CategoryCreature},
		{Kind: ItemDragon, Name: "Dragón", Price: 6_000_000_000, DailyYield: 150_000_000, LifetimeDays: 90, Category: CategoryCreature},
		{Kind: ItemFenix, Name: "Fénix", Price: 12_000_000_000, DailyYield: 320_000_000, LifetimeDays: 90, Category: CategoryCreature},
		{Kind: ItemTotemNFT, Name: "Tótem Ancestral", Price: 2_500_000_000, DailyYield: 50_000_000, LifetimeDays: 0, Category: CategoryNFT},
		{Kind: ItemCofre, Name: "Cofre Mítico", Price: 5_000_000_000, DailyYield: 110_000_000, LifetimeDays: 0, Category: CategoryRelic},
	})
	if err != nil {
		panic(err)
	}
	return catalog
}

// Referral rewards are regular catalog items.
const (
	referralActivationReward ItemKind = ItemHada
	referralMilestoneReward  ItemKind = ItemCofre
)
