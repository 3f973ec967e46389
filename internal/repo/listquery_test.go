package repo

import (
	"testing"

	"go-bookstore-api/internal/domain"
	"go-bookstore-api/pkg/utils"
)

func seedBooksWithUsers(t *testing.T, r *BookRepo, users *UserRepo) (alice, bob domain.User) {
	t.Helper()
	alice = domain.User{ID: utils.NewID(), Name: "alice", Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	bob = domain.User{ID: utils.NewID(), Name: "bob", Username: "bob", Email: "bob@example.com", PasswordHash: "x"}
	for _, u := range []domain.User{alice, bob} {
		u := u
		if err := users.Create(&u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	for _, b := range []domain.Book{
		{ID: utils.NewID(), Name: "golang in action", CreatedBy: alice.ID},
		{ID: utils.NewID(), Name: "sql for humans", CreatedBy: alice.ID},
		{ID: utils.NewID(), Name: "bob's diary", CreatedBy: bob.ID},
	} {
		b := b
		if err := r.Create(&b); err != nil {
			t.Fatalf("seed book: %v", err)
		}
	}
	return alice, bob
}

func TestListWithCreatorFiltersOnJoinedName(t *testing.T) {
	db := newTestDB(t)
	books := NewBookRepo(db)
	users := NewUserRepo(db)
	alice, _ := seedBooksWithUsers(t, books, users)

	got, err := books.ListWithCreator("alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 books by alice, got %d", len(got))
	}
	for _, b := range got {
		if b.Creator == nil {
			t.Fatalf("expected inlined creator on %q", b.Name)
		}
		if b.Creator.ID != alice.ID || b.Creator.Name != "alice" {
			t.Fatalf("wrong creator: %+v", b.Creator)
		}
	}
}

func TestListWithCreatorNoFilterIsNoop(t *testing.T) {
	db := newTestDB(t)
	books := NewBookRepo(db)
	users := NewUserRepo(db)
	seedBooksWithUsers(t, books, users)

	got, err := books.ListWithCreator("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected all 3 books, got %d", len(got))
	}
}

func TestListWithCreatorFilterIsCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	books := NewBookRepo(db)
	users := NewUserRepo(db)
	seedBooksWithUsers(t, books, users)

	got, err := books.ListWithCreator("Alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("filter must be exact-match case-sensitive, got %d rows", len(got))
	}
}

func TestLookupDanglingReferenceYieldsEmptyRelation(t *testing.T) {
	db := newTestDB(t)
	books := NewBookRepo(db)

	// 引用了不存在的用户 id：行保留，关联字段为空
	b := domain.Book{ID: utils.NewID(), Name: "orphan", CreatedBy: "nosuchuser"}
	if err := books.Create(&b); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := books.ListWithCreator("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0].Creator != nil {
		t.Fatalf("expected empty relation, got %+v", got[0].Creator)
	}
}

func TestLookupMissingForeignTableIsNotAnError(t *testing.T) {
	// 只迁移 books：users 表不存在
	db := newTestDB(t, &domain.Book{})
	books := NewBookRepo(db)
	b := domain.Book{ID: utils.NewID(), Name: "lonely", CreatedBy: "whoever"}
	if err := books.Create(&b); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := books.ListWithCreator("")
	if err != nil {
		t.Fatalf("missing foreign table must not error: %v", err)
	}
	if len(got) != 1 || got[0].Creator != nil {
		t.Fatalf("expected 1 row with empty relation, got %+v", got)
	}

	// 带过滤时在空关联上匹配，结果必然为空集
	got, err = books.ListWithCreator("alice")
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(got))
	}
}

func TestGroupByPriceSumsQuantity(t *testing.T) {
	db := newTestDB(t)
	products := NewProductRepo(db)
	cats := NewCategoryRepo(db)
	cat := domain.Category{ID: utils.NewID(), Name: "misc"}
	if err := cats.Create(&cat); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	for _, p := range []domain.Product{
		{ID: utils.NewID(), Title: "a", Price: 10, Quantity: 5, CategoryID: cat.ID},
		{ID: utils.NewID(), Title: "b", Price: 10, Quantity: 8, CategoryID: cat.ID},
		{ID: utils.NewID(), Title: "c", Price: 20, Quantity: 2, CategoryID: cat.ID},
	} {
		p := p
		if err := products.Create(&p); err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}

	groups, err := products.GroupByPrice(false, 0)
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	byPrice := map[float64]domain.PriceGroup{}
	for _, g := range groups {
		byPrice[g.Price] = g
	}
	if g := byPrice[10]; g.TotalQuantity != 13 || g.Count != 2 {
		t.Fatalf("price 10 group wrong: %+v", g)
	}
	if g := byPrice[20]; g.TotalQuantity != 2 || g.Count != 1 {
		t.Fatalf("price 20 group wrong: %+v", g)
	}

	// 倒序 + 截断：只剩 price 10 组
	top, err := products.GroupByPrice(true, 1)
	if err != nil {
		t.Fatalf("group sorted: %v", err)
	}
	if len(top) != 1 || top[0].Price != 10 || top[0].TotalQuantity != 13 {
		t.Fatalf("expected only the price-10 group, got %+v", top)
	}
}
