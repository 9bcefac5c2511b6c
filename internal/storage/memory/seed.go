package memory

import (
	"github.com/carson-networks/finance-ledger/internal/storage/category"
	"github.com/carson-networks/finance-ledger/internal/storage/status"
	"github.com/carson-networks/finance-ledger/internal/storage/user"
)

// AddUser stores u as given, including its ID.
func (s *Store) AddUser(u user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
		u.UpdatedAt = u.CreatedAt
	}
	s.data.users[u.ID] = &u
}

func (s *Store) AddCategoryType(t category.CategoryType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.types[t.ID] = &t
}

func (s *Store) AddCategory(c category.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Type = nil
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	s.data.categories[c.ID] = &c
}

func (s *Store) AddSubcategory(sub category.Subcategory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub.Category = nil
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = s.now()
	}
	s.data.subcategories[sub.ID] = &sub
}

// Seed loads the reference catalogue and the demo user. IDs match the
// Postgres seed migration.
func Seed(s *Store) {
	s.AddCategoryType(category.CategoryType{ID: 1, Name: category.TypeExpense, Description: "Salidas de dinero"})
	s.AddCategoryType(category.CategoryType{ID: 2, Name: category.TypeIncome, Description: "Entradas de dinero"})

	for _, c := range seedCategories {
		s.AddCategory(category.Category{
			ID:          c.id,
			Name:        c.name,
			Description: c.description,
			Icon:        c.icon,
			Color:       c.color,
			Status:      status.Active,
			TypeID:      c.typeID,
		})
	}
	for _, sub := range seedSubcategories {
		s.AddSubcategory(category.Subcategory{
			ID:          sub.id,
			Name:        sub.name,
			Description: sub.description,
			Status:      status.Active,
			CategoryID:  sub.categoryID,
		})
	}

	s.AddUser(user.User{
		ID:                 1,
		FirstName:          "Usuario",
		LastName:           "Prueba",
		Email:              "usuario@prueba.com",
		CurrencyPreference: "ARS",
		Status:             status.Active,
	})
}

var seedCategories = []struct {
	id          int64
	typeID      int64
	name        string
	description string
	icon        string
	color       string
}{
	{1, 1, "Vivienda", "Gastos relacionados con el hogar y la vivienda", "home", "#4A90E2"},
	{2, 1, "Alimentación", "Gastos relacionados con comida y bebida", "restaurant", "#50E3C2"},
	{3, 1, "Transporte", "Gastos de movilidad y transporte", "car", "#F5A623"},
	{4, 1, "Salud", "Gastos médicos y de cuidado personal", "medical", "#D0021B"},
	{5, 1, "Educación", "Gastos educativos y de formación", "school", "#9013FE"},
	{6, 1, "Entretenimiento", "Gastos de ocio y actividades recreativas", "ticket", "#7ED321"},
	{7, 1, "Compras personales", "Ropa, tecnología y artículos personales", "shopping", "#F8E71C"},
	{8, 1, "Servicios financieros", "Comisiones e intereses bancarios", "bank", "#4A4A4A"},
	{9, 1, "Impuestos", "Impuestos y tasas", "document", "#9B9B9B"},
	{10, 1, "Mascotas", "Gastos relacionados con mascotas", "pets", "#8B572A"},
	{11, 1, "Gastos profesionales", "Gastos relacionados con el trabajo", "briefcase", "#000000"},
	{12, 1, "Varios", "Otros gastos varios y misceláneos", "more", "#B8E986"},
	{13, 2, "Ingresos laborales", "Ingresos por trabajo en relación de dependencia", "work", "#4CAF50"},
	{14, 2, "Ingresos por trabajo independiente", "Ingresos por actividades freelance", "laptop", "#2196F3"},
	{15, 2, "Inversiones", "Rendimientos de inversiones financieras", "trending_up", "#FFC107"},
	{16, 2, "Ingresos por propiedades", "Ingresos por alquileres o propiedades", "apartment", "#9C27B0"},
	{17, 2, "Ingresos extraordinarios", "Ingresos no habituales", "star", "#FF9800"},
	{18, 2, "Ingresos pasivos", "Ingresos recurrentes con poco esfuerzo", "attach_money", "#607D8B"},
	{19, 2, "Préstamos y financiación", "Dinero recibido por préstamos", "account_balance", "#795548"},
	{20, 2, "Jubilaciones y pensiones", "Ingresos por jubilación o pensión", "elderly", "#8BC34A"},
	{21, 2, "Transferencias", "Transferencias recibidas de familiares u otros", "swap_horiz", "#FF5722"},
}

var seedSubcategories = []struct {
	id          int64
	categoryID  int64
	name        string
	description string
}{
	{1, 1, "Alquiler/Hipoteca", "Pago mensual de alquiler o hipoteca"},
	{2, 1, "Servicios", "Luz, agua, gas"},
	{3, 1, "Internet y Cable", "Servicio de internet y televisión"},
	{4, 2, "Supermercado", "Compras generales en supermercados"},
	{5, 2, "Comidas fuera de casa", "Restaurantes y bares"},
	{6, 2, "Delivery/Comida a domicilio", "Pedidos a domicilio"},
	{7, 3, "Combustible", "Compras de combustible para el vehículo"},
	{8, 3, "Transporte público (Colectivo, Subte, Tren)", "Gastos en transporte público"},
	{9, 4, "Obra social/Prepaga", "Pago de obra social o prepaga"},
	{10, 4, "Medicamentos", "Compra de medicamentos"},
	{11, 5, "Cursos y capacitaciones", "Gastos en cursos y capacitaciones"},
	{12, 6, "Streaming (Netflix, Disney+, etc.)", "Gastos en servicios de streaming"},
	{13, 6, "Salidas sociales", "Gastos en salidas sociales y reuniones"},
	{14, 7, "Ropa y calzado", "Compra de ropa y calzado"},
	{15, 8, "Comisiones bancarias", "Comisiones por servicios bancarios"},
	{16, 9, "Impuestos municipales", "Pago de impuestos municipales"},
	{17, 10, "Veterinario", "Gastos en veterinario"},
	{18, 11, "Material de oficina", "Compra de material de oficina"},
	{19, 12, "Regalos", "Compra de regalos"},
	{20, 13, "Salario/Sueldo", "Ingresos regulares por trabajo"},
	{21, 13, "Aguinaldo", "Sueldo anual complementario"},
	{22, 14, "Honorarios profesionales", "Pago por servicios profesionales prestados"},
	{23, 15, "Intereses de plazos fijos", "Ingresos por intereses de plazos fijos"},
	{24, 16, "Alquileres", "Ingresos por alquiler de propiedades"},
	{25, 17, "Devolución de impuestos", "Devoluciones fiscales recibidas"},
	{26, 18, "Regalías", "Ingresos por derechos de autor, patentes, etc."},
	{27, 19, "Préstamos personales", "Dinero recibido por préstamos personales"},
	{28, 20, "Jubilación", "Haber jubilatorio mensual"},
	{29, 21, "Transferencias familiares", "Transferencias recibidas de familiares"},
}
