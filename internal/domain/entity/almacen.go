package entity

import "time"

// Almacen representa un almacén físico donde se guardan telas.
type Almacen struct {
	ID                 int64     `db:"id"`
	CodigoAlmacen      int       `db:"codigo_almacen"`
	NombreAlmacen      string    `db:"nombre_almacen"`
	Abreviatura        string    `db:"abreviatura"`
	Descripcion        string    `db:"descripcion"`
	Estado             string    `db:"estado"`
	TipoAlmacen        string    `db:"tipo_almacen"`
	Local              string    `db:"local"`
	FechaRegistro      time.Time `db:"fecha_registro"`
	FechaActualizacion time.Time `db:"fecha_actualizacion"`
}
