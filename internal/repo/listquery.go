package repo

import (
	"fmt"

	"gorm.io/gorm"
)

// 列表联查管道。阶段顺序固定：lookup → match → collapse → group → sort → limit，
// 每一阶段作用在上一阶段的输出上，最终编译成一条 JOIN ... WHERE 的 SQL。
// 文档库里这是 $lookup/$match/$arrayElemAt 的写法；换到 SQL 引擎就是显式联表。

type lookupStage struct {
	from       string // 外表名
	localField string // 本表上的引用列
	display    string // 外表上投影 + 过滤用的展示列
}

type sortStage struct {
	column string
	desc   bool
}

type groupStage struct {
	column   string // 分组列
	sumField string // 求和列
}

type ListPipeline struct {
	db     *gorm.DB
	table  string
	lookup *lookupStage
	match  *string
	group  *groupStage
	sort   *sortStage
	limit  int
}

func NewListPipeline(db *gorm.DB, table string) *ListPipeline {
	return &ListPipeline{db: db, table: table}
}

// Lookup 联上外表：本表 localField 引用外表 id，只投影外表的 display 列。
func (p *ListPipeline) Lookup(from, localField, display string) *ListPipeline {
	p.lookup = &lookupStage{from: from, localField: localField, display: display}
	return p
}

// Match 对联出来的展示列做精确等值过滤；value 为空指针时该阶段是 no-op。
func (p *ListPipeline) Match(value *string) *ListPipeline {
	p.match = value
	return p
}

func (p *ListPipeline) Group(column, sumField string) *ListPipeline {
	p.group = &groupStage{column: column, sumField: sumField}
	return p
}

func (p *ListPipeline) Sort(column string, desc bool) *ListPipeline {
	p.sort = &sortStage{column: column, desc: desc}
	return p
}

func (p *ListPipeline) Limit(n int) *ListPipeline {
	p.limit = n
	return p
}

// Find 执行管道并扫描到 dest。
// 外表不存在时不报错：每行的关联字段置空（文档引擎对缺失集合就是这个语义），
// 此时若还带着 match 过滤，结果自然为空集。
func (p *ListPipeline) Find(dest any) error {
	q := p.db.Table(p.table)

	if p.lookup != nil {
		lk := p.lookup
		if p.db.Migrator().HasTable(lk.from) {
			q = q.Select(fmt.Sprintf("%s.*, r.id AS ref_id, r.%s AS ref_display", p.table, lk.display)).
				Joins(fmt.Sprintf("LEFT JOIN %s r ON r.id = %s.%s", lk.from, p.table, lk.localField))
			if p.match != nil {
				q = q.Where(fmt.Sprintf("r.%s = ?", lk.display), *p.match)
			}
		} else {
			if p.match != nil {
				return nil // 空关联上过滤，必然空集
			}
			q = q.Select(fmt.Sprintf("%s.*, NULL AS ref_id, NULL AS ref_display", p.table))
		}
	}

	if p.group != nil {
		g := p.group
		q = q.Select(fmt.Sprintf("%s, SUM(%s) AS total_quantity, COUNT(*) AS count", g.column, g.sumField)).
			Group(g.column)
	}
	if p.sort != nil {
		dir := "ASC"
		if p.sort.desc {
			dir = "DESC"
		}
		q = q.Order(p.sort.column + " " + dir)
	}
	if p.limit > 0 {
		q = q.Limit(p.limit)
	}

	return q.Scan(dest).Error
}
