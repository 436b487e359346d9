package session

import (
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/data"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/formula"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

// EquipItem wears a unique instance from the inventory; whatever occupied the
// slot goes back into the bag.
func (s *Session) EquipItem(uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.rt.Player
	u := p.Inv.FindUnique(uid)
	if u == nil {
		return ErrNotFound
	}
	tpl := s.rt.Items.Get(u.ItemID)
	if tpl == nil || tpl.Kind != data.KindEquipment || tpl.Slot == "" {
		return ErrInvalidState
	}

	p.Inv.RemoveUnique(uid)
	if prev := p.Equip.Set(tpl.Slot, u); prev != nil {
		p.Inv.AddUnique(prev)
	}
	p.ClampVitals()
	return nil
}

// UnequipItem removes whatever is worn in a slot back into the inventory.
func (s *Session) UnequipItem(slot data.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.rt.Player
	u := p.Equip.Get(slot)
	if u == nil {
		return ErrNotFound
	}
	p.Equip.Set(slot, nil)
	p.Inv.AddUnique(u)
	p.ClampVitals()
	return nil
}

// DepositItem moves carried stackables into the depot.
func (s *Session) DepositItem(itemID int32, qty int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.rt.Player
	if qty <= 0 || !p.Inv.RemoveStack(itemID, qty) {
		return ErrInsufficient
	}
	p.Depot[itemID] += qty
	return nil
}

// WithdrawItem moves depot stackables back into the bag.
func (s *Session) WithdrawItem(itemID int32, qty int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.rt.Player
	if qty <= 0 || p.Depot[itemID] < qty {
		return ErrInsufficient
	}
	p.Depot[itemID] -= qty
	if p.Depot[itemID] == 0 {
		delete(p.Depot, itemID)
	}
	p.Inv.AddStack(itemID, qty)
	return nil
}

// DiscardItem destroys carried stackables.
func (s *Session) DiscardItem(itemID int32, qty int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty <= 0 || !s.rt.Player.Inv.RemoveStack(itemID, qty) {
		return ErrInsufficient
	}
	return nil
}

// DiscardUnique destroys one unique instance.
func (s *Session) DiscardUnique(uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rt.Player.Inv.RemoveUnique(uid) == nil {
		return ErrNotFound
	}
	return nil
}

// DepositGold moves carried gold into the bank, out of reach of death taxes.
func (s *Session) DepositGold(amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.rt.Player
	if amount <= 0 || p.Gold < amount {
		return ErrInsufficient
	}
	p.Gold -= amount
	p.BankGold += amount
	return nil
}

func (s *Session) WithdrawGold(amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.rt.Player
	if amount <= 0 || p.BankGold < amount {
		return ErrInsufficient
	}
	p.BankGold -= amount
	p.Gold += amount
	return nil
}

// BuyItem purchases from the catalog at base price. Equipment arrives as a
// common-rarity instance; everything else stacks.
func (s *Session) BuyItem(itemID int32, qty int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.rt.Player
	tpl := s.rt.Items.Get(itemID)
	if tpl == nil {
		return ErrNotFound
	}
	if qty <= 0 || tpl.Price <= 0 {
		return ErrInvalidState
	}
	cost := tpl.Price * qty
	if p.Gold < cost {
		return ErrInsufficient
	}
	p.Gold -= cost

	if tpl.Kind == data.KindEquipment && !tpl.Stackable {
		for i := int64(0); i < qty; i++ {
			p.Inv.AddUnique(world.NewUniqueItem(tpl.ItemID, world.RarityCommon,
				tpl.Attack, tpl.Armor, tpl.HP, tpl.MP))
		}
	} else {
		p.Inv.AddStack(itemID, qty)
	}
	return nil
}

// SellItem sells carried stackables back at half price.
func (s *Session) SellItem(itemID int32, qty int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.rt.Player
	tpl := s.rt.Items.Get(itemID)
	if tpl == nil {
		return ErrNotFound
	}
	if qty <= 0 || !p.Inv.RemoveStack(itemID, qty) {
		return ErrInsufficient
	}
	p.Gold += tpl.Price / 2 * qty
	return nil
}

// SellUnique sells one unique instance at half price, scaled by its rarity.
func (s *Session) SellUnique(uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.rt.Player
	u := p.Inv.FindUnique(uid)
	if u == nil {
		return ErrNotFound
	}
	tpl := s.rt.Items.Get(u.ItemID)
	if tpl == nil {
		return ErrNotFound
	}
	p.Inv.RemoveUnique(uid)
	p.Gold += int64(float64(tpl.Price/2) * u.Rarity.StatMultiplier())
	return nil
}

// BuyBlessing purchases the one-shot death protection.
func (s *Session) BuyBlessing() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.rt.Player
	if p.Blessing {
		return ErrInvalidState
	}
	cost := formula.BlessingCost(p.Level)
	if p.Gold < cost {
		return ErrInsufficient
	}
	p.Gold -= cost
	p.Blessing = true
	s.logf("You feel protected.")
	return nil
}
