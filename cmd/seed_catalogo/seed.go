package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalogoXML struct {
	Categorias []categoriaXML `xml:"categoria"`
}

type categoriaXML struct {
	Nombre        string         `xml:"nombre,attr"`
	Icono         string         `xml:"icono,attr"`
	Descripcion   string         `xml:"descripcion,attr"`
	Inactiva      bool           `xml:"inactiva,attr"`
	Subcategorias []categoriaXML `xml:"categoria"`
	Servicios     []servicioXML  `xml:"servicio"`
}

type servicioXML struct {
	Nombre      string `xml:"nombre,attr"`
	Descripcion string `xml:"descripcion,attr"`
}

// filaCategoria categoría aplanada; padre es "" para raíces.
type filaCategoria struct {
	nombre, descripcion, icono, padre string
	activo                            bool
}

type filaServicio struct {
	nombre, descripcion string
	categorias          []string
}

type seed struct {
	categorias []filaCategoria // padres antes que hijas
	servicios  []filaServicio  // ordenados por nombre
}

func decodeCatalogo(r io.Reader) (*catalogoXML, error) {
	var c catalogoXML
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		switch strings.ToUpper(charset) {
		case "ISO-8859-1", "ISO8859-1", "LATIN1":
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		case "WINDOWS-1252", "CP1252":
			return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// flatten recorre el árbol en preorden. Un nombre de categoría repetido es error (la columna es
// UNIQUE); un servicio que aparece en varias categorías se vincula a todas.
func flatten(c *catalogoXML) (*seed, error) {
	s := &seed{}
	vistas := map[string]bool{}
	servicios := map[string]*filaServicio{}

	var walk func(cat categoriaXML, padre string) error
	walk = func(cat categoriaXML, padre string) error {
		nombre := strings.TrimSpace(cat.Nombre)
		if nombre == "" {
			return fmt.Errorf("categoría sin nombre (padre %q)", padre)
		}
		if vistas[nombre] {
			return fmt.Errorf("categoría repetida: %q", nombre)
		}
		vistas[nombre] = true
		s.categorias = append(s.categorias, filaCategoria{
			nombre:      nombre,
			descripcion: strings.TrimSpace(cat.Descripcion),
			icono:       strings.TrimSpace(cat.Icono),
			padre:       padre,
			activo:      !cat.Inactiva,
		})
		for _, sv := range cat.Servicios {
			n := strings.TrimSpace(sv.Nombre)
			if n == "" {
				return fmt.Errorf("servicio sin nombre en %q", nombre)
			}
			f, ok := servicios[n]
			if !ok {
				f = &filaServicio{nombre: n}
				servicios[n] = f
			}
			if f.descripcion == "" {
				f.descripcion = strings.TrimSpace(sv.Descripcion)
			}
			f.categorias = append(f.categorias, nombre)
		}
		for _, sub := range cat.Subcategorias {
			if err := walk(sub, nombre); err != nil {
				return err
			}
		}
		return nil
	}
	for _, cat := range c.Categorias {
		if err := walk(cat, ""); err != nil {
			return nil, err
		}
	}

	for _, f := range servicios {
		s.servicios = append(s.servicios, *f)
	}
	sort.Slice(s.servicios, func(i, j int) bool { return s.servicios[i].nombre < s.servicios[j].nombre })
	return s, nil
}

// writeSQL escribe un script idempotente: categorías por nombre (el padre se resuelve con
// subconsulta), servicios y vínculos con ON CONFLICT.
func writeSQL(w io.Writer, s *seed) error {
	var b strings.Builder
	b.WriteString("-- Catálogo inicial de categorías y servicios\n")
	b.WriteString("-- Generado por cmd/seed_catalogo; no se aplica automáticamente\n\n")

	b.WriteString("-- 1. Categorías (padres antes que hijas)\n")
	for _, c := range s.categorias {
		padre := "NULL"
		if c.padre != "" {
			padre = fmt.Sprintf("(SELECT id FROM categorias WHERE nombre = %s)", quote(c.padre))
		}
		fmt.Fprintf(&b, "INSERT INTO categorias (nombre, descripcion, icono, activo, categoria_padre_id)\n")
		fmt.Fprintf(&b, "VALUES (%s, %s, %s, %t, %s)\n", quote(c.nombre), nullable(c.descripcion), nullable(c.icono), c.activo, padre)
		b.WriteString("ON CONFLICT (nombre) DO UPDATE SET descripcion = EXCLUDED.descripcion, icono = EXCLUDED.icono, categoria_padre_id = EXCLUDED.categoria_padre_id;\n")
	}

	if len(s.servicios) > 0 {
		b.WriteString("\n-- 2. Servicios\n")
		b.WriteString("INSERT INTO servicios (nombre, descripcion) VALUES\n")
		for i, sv := range s.servicios {
			sep := ","
			if i == len(s.servicios)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "  (%s, %s)%s\n", quote(sv.nombre), nullable(sv.descripcion), sep)
		}
		b.WriteString("ON CONFLICT (nombre) DO NOTHING;\n")

		b.WriteString("\n-- 3. Vínculos servicio-categoría\n")
		for _, sv := range s.servicios {
			for _, cat := range sv.categorias {
				b.WriteString("INSERT INTO servicio_categorias (servicio_id, categoria_id)\n")
				fmt.Fprintf(&b, "SELECT s.id, c.id FROM servicios s, categorias c WHERE s.nombre = %s AND c.nombre = %s\n", quote(sv.nombre), quote(cat))
				b.WriteString("ON CONFLICT DO NOTHING;\n")
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func nullable(s string) string {
	if s == "" {
		return "NULL"
	}
	return quote(s)
}
