package model

// FormationType identifies the shape subordinates hold relative to their
// leader while following a MoveTo/MoveFastTo/SneakTo order.
type FormationType int

const (
	FormationLine FormationType = iota
	FormationWedge
	FormationColumn
	FormationEchelon
)

// Squad is an ordered collection of soldier identities with a distinguished
// leader. BattleState owns the Soldier records; Squad only ever references
// them by ID, so a soldier leaving a squad never needs to touch the soldier
// record itself (spec 9, "Squad/Soldier ownership").
type Squad struct {
	ID        SquadID
	Side      Side
	Members   []SoldierID // squad-internal order; Members[0] is the original leader
	LeaderID  SoldierID
	Formation FormationType
}

// NewSquad creates a squad with members[0] as the initial leader.
func NewSquad(id SquadID, side Side, members []SoldierID) *Squad {
	sq := &Squad{ID: id, Side: side, Members: append([]SoldierID(nil), members...), Formation: FormationWedge}
	if len(members) > 0 {
		sq.LeaderID = members[0]
	}
	return sq
}

// EnsureLeader re-asserts spec invariant 2: if the current leader is no
// longer alive, leadership transfers to the next alive member in
// squad-internal order (Members, not arrival/death order). Returns true if
// leadership changed. alive must report whether a given soldier ID can
// currently lead (IsAlive()).
func (sq *Squad) EnsureLeader(alive func(SoldierID) bool) bool {
	if alive(sq.LeaderID) {
		return false
	}
	for _, id := range sq.Members {
		if alive(id) {
			sq.LeaderID = id
			return true
		}
	}
	return false
}

// Subordinates returns every member other than the current leader.
func (sq *Squad) Subordinates() []SoldierID {
	out := make([]SoldierID, 0, len(sq.Members))
	for _, id := range sq.Members {
		if id != sq.LeaderID {
			out = append(out, id)
		}
	}
	return out
}

// SlotIndex returns a member's position in squad-internal order, used for
// deterministic formation-offset assignment (spec 4.E propagation). The
// leader is always slot 0 regardless of its position in Members.
func (sq *Squad) SlotIndex(id SoldierID) int {
	if id == sq.LeaderID {
		return 0
	}
	slot := 1
	for _, m := range sq.Members {
		if m == sq.LeaderID {
			continue
		}
		if m == id {
			return slot
		}
		slot++
	}
	return -1
}
