// Package seed generates consistent sample snapshots for demos and load tests.
package seed

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kushalbajje/expense-management/internal/core/domain"
	"github.com/shopspring/decimal"
)

var DefaultDepartments = []string{"Engineering", "Marketing", "Sales", "HR", "Finance"}

var firstNames = []string{
	"John", "Jane", "Michael", "Sarah", "David", "Emily", "Chris", "Jessica", "Matthew", "Ashley",
	"James", "Amanda", "Robert", "Melissa", "William", "Nicole", "Daniel", "Stephanie", "Joseph", "Jennifer",
	"Thomas", "Lisa", "Charles", "Angela", "Christopher", "Heather", "Mark", "Amy", "Donald", "Anna",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
	"Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson",
}

var descriptions = []string{
	"Office supplies purchase", "Software license renewal", "Client meeting lunch", "Travel expenses",
	"Equipment maintenance", "Training materials", "Conference attendance", "Team building event",
	"Marketing campaign", "Research materials", "Presentation supplies", "Internet services",
	"Phone bill", "Printing costs", "Parking fees", "Taxi fare",
	"Hotel accommodation", "Flight tickets", "Meal allowance", "Office rent",
}

const day = 24 * time.Hour

// MaxExpenses bounds Users * MaxExpensesPerUser so one request cannot ask for
// more expenses than the process can hold.
const MaxExpenses = 5_000_000

// Options controls the shape of a generated snapshot.
type Options struct {
	Departments        []string
	Users              int
	MinExpensesPerUser int
	MaxExpensesPerUser int
	// Seed makes generation reproducible. Zero draws a random seed.
	Seed uint64
	Now  time.Time
}

// DefaultOptions mirrors the demo dataset with a lighter expense load.
func DefaultOptions() Options {
	return Options{
		Departments:        DefaultDepartments,
		Users:              1000,
		MinExpensesPerUser: 5,
		MaxExpensesPerUser: 15,
	}
}

func (o Options) validate() error {
	if len(o.Departments) == 0 && o.Users > 0 {
		return fmt.Errorf("seed: users need at least one department")
	}
	if o.Users < 0 || o.MinExpensesPerUser < 0 {
		return fmt.Errorf("seed: counts must not be negative")
	}
	if o.MaxExpensesPerUser < o.MinExpensesPerUser {
		return fmt.Errorf("seed: max expenses per user %d below min %d", o.MaxExpensesPerUser, o.MinExpensesPerUser)
	}
	seen := make(map[string]bool, len(o.Departments))
	for _, name := range o.Departments {
		key := strings.ToLower(strings.TrimSpace(name))
		if seen[key] {
			return fmt.Errorf("seed: department %q listed twice", name)
		}
		seen[key] = true
	}
	if o.MaxExpensesPerUser > 0 && o.Users > MaxExpenses/o.MaxExpensesPerUser {
		return fmt.Errorf("seed: %d users with up to %d expenses each exceeds the limit of %d expenses",
			o.Users, o.MaxExpensesPerUser, MaxExpenses)
	}
	return nil
}

// Generate builds a snapshot satisfying every store invariant. Departments are
// created up to a year back, users up to 300 days back, and each expense falls
// between its owner's creation and Now.
func Generate(opts Options) (*domain.Snapshot, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Seed == 0 {
		opts.Seed = rand.Uint64()
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}

	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], opts.Seed)
	src := rand.NewChaCha8(key)
	r := rand.New(src)
	newID := func() string { return uuid.Must(uuid.NewRandomFromReader(src)).String() }
	now := opts.Now

	snap := domain.NewSnapshot()
	deptIDs := make([]string, 0, len(opts.Departments))
	for _, name := range opts.Departments {
		id := newID()
		snap.Departments.Put(id, domain.Department{
			DepartmentID:  id,
			Name:          name,
			TotalSpending: decimal.Zero,
			AuditFields: domain.AuditFields{
				CreatedAt: now.Add(-randDuration(r, 365*day)),
				UpdatedAt: now,
			},
		})
		snap.UsersByDepartment.Ensure(id)
		deptIDs = append(deptIDs, id)
	}

	spendByDept := make(map[string]decimal.Decimal, len(deptIDs))
	for i := 0; i < opts.Users; i++ {
		userID := newID()
		deptID := deptIDs[r.IntN(len(deptIDs))]
		createdAt := now.Add(-randDuration(r, 300*day))

		user := domain.User{
			UserID:       userID,
			FirstName:    firstNames[r.IntN(len(firstNames))],
			LastName:     lastNames[r.IntN(len(lastNames))],
			DepartmentID: deptID,
			AuditFields:  domain.AuditFields{CreatedAt: createdAt, UpdatedAt: now},
		}
		snap.UsersByDepartment.Add(deptID, userID)
		snap.ExpensesByUser.Ensure(userID)

		count := opts.MinExpensesPerUser + r.IntN(opts.MaxExpensesPerUser-opts.MinExpensesPerUser+1)
		var total int64
		for j := 0; j < count; j++ {
			expenseID := newID()
			cost := int64(r.IntN(1000) + 10)
			at := createdAt.Add(randDuration(r, now.Sub(createdAt)))
			snap.Expenses.Put(expenseID, domain.Expense{
				ExpenseID:   expenseID,
				UserID:      userID,
				Category:    domain.ExpenseCategories[r.IntN(len(domain.ExpenseCategories))],
				Description: fmt.Sprintf("%s - %d", descriptions[r.IntN(len(descriptions))], j+1),
				Cost:        decimal.NewFromInt(cost),
				AuditFields: domain.AuditFields{CreatedAt: at, UpdatedAt: at},
			})
			snap.ExpensesByUser.Add(userID, expenseID)
			total += cost
		}

		user.ExpenseCount = count
		user.TotalSpending = decimal.NewFromInt(total)
		snap.Users.Put(userID, user)
		spendByDept[deptID] = spendByDept[deptID].Add(user.TotalSpending)
	}

	for _, id := range deptIDs {
		dept, _ := snap.Departments.Get(id)
		dept.UserCount = snap.UsersByDepartment.Size(id)
		if spent, ok := spendByDept[id]; ok {
			dept.TotalSpending = spent
		}
		snap.Departments.Put(id, dept)
	}
	return snap, nil
}

func randDuration(r *rand.Rand, span time.Duration) time.Duration {
	if span <= 0 {
		return 0
	}
	return time.Duration(r.Int64N(int64(span)))
}
