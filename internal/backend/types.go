package backend

// Actividad is the read model returned by /actividades/. The nombre_* and
// lateness fields are resolved server-side and are never echoed back on
// writes (see activity.Sanitize).
type Actividad struct {
	ID                    int     `json:"id"`
	Descripcion           string  `json:"descripcion"`
	DevelopmentDoing      string  `json:"development_doing"`
	OrdenServicioLegal    string  `json:"orden_servicio_legal"`
	Shk                   string  `json:"shk"`
	PrioridadAtencion     string  `json:"prioridad_atencion"`
	EmpresaID             *int    `json:"empresa_id"`
	AreaID                *int    `json:"area_id"`
	OrigenID              *int    `json:"origen_id"`
	TipoReqID             *int    `json:"tipo_req_id"`
	TipoServicioID        *int    `json:"tipo_servicio_id"`
	TipoIntervencionID    *int    `json:"tipo_intervencion_id"`
	DuenoProceso          string  `json:"dueno_proceso"`
	ResponsableID         *int    `json:"responsable_id"`
	RevisorID             *int    `json:"revisor_id"`
	AprobadorID           *int    `json:"aprobador_id"`
	AutoridadRQ           string  `json:"autoridad_rq"`
	FechaCompromiso       string  `json:"fecha_compromiso"`
	FechaEntregaReal      string  `json:"fecha_entrega_real"`
	ProximaValidacion     string  `json:"proxima_validacion"`
	FrecuenciaControlDias *int    `json:"frecuencia_control_dias"`
	Avance                float64 `json:"avance"`
	CondicionActual       string  `json:"condicion_actual"`
	StatusID              *int    `json:"status_id"`
	ProductoEntregable    string  `json:"producto_entregable"`
	MedioControlID        *int    `json:"medio_control_id"`
	ControlResultadosID   *int    `json:"control_resultados_id"`
	LinkEvidencia         string  `json:"link_evidencia"`
	Observaciones         string  `json:"observaciones"`
	FechaOrigen           string  `json:"fecha_origen"`
	CreatedAt             string  `json:"created_at"`

	// Server-resolved display fields
	NombreEmpresa     string `json:"nombre_empresa"`
	NombreArea        string `json:"nombre_area"`
	NombreResponsable string `json:"nombre_responsable"`
	NombreStatus      string `json:"nombre_status"`
	DaysLate          *int   `json:"days_late"`
	PrioridadAccion   string `json:"prioridad_accion"`
}

// ActividadFilters map to /actividades/ query parameters. Empty values are
// omitted from the request, not sent as empty strings.
type ActividadFilters struct {
	EmpresaID     string
	StatusID      string
	ResponsableID string
	FechaInicio   string
	FechaFin      string
}

type Empresa struct {
	ID          int    `json:"id"`
	RazonSocial string `json:"razon_social"`
	RUC         string `json:"ruc"`
	Shk         string `json:"shk"`
}

type Area struct {
	ID            int    `json:"id"`
	Codigo        string `json:"codigo"`
	Nombre        string `json:"nombre"`
	EmpresaID     int    `json:"empresa_id"`
	NombreEmpresa string `json:"nombre_empresa"`
}

type Usuario struct {
	ID             int    `json:"id"`
	NombreCompleto string `json:"nombre_completo"`
	Email          string `json:"email"`
	Password       string `json:"password,omitempty"`
	Rol            string `json:"rol"`
	EmpresaID      *int   `json:"empresa_id"`
}

type CatalogoItem struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// CatalogoCategorias enumerates the seven master lists served by
// /config/listas, in display order.
var CatalogoCategorias = []string{
	"origenes", "tipos_req", "servicios", "intervenciones",
	"medios", "resultados", "status",
}

type Listas struct {
	Origenes       []CatalogoItem `json:"origenes"`
	TiposReq       []CatalogoItem `json:"tipos_req"`
	Servicios      []CatalogoItem `json:"servicios"`
	Intervenciones []CatalogoItem `json:"intervenciones"`
	Medios         []CatalogoItem `json:"medios"`
	Resultados     []CatalogoItem `json:"resultados"`
	Status         []CatalogoItem `json:"status"`
}

// ByCategoria returns the list behind one of the seven category keys.
func (l Listas) ByCategoria(key string) []CatalogoItem {
	switch key {
	case "origenes":
		return l.Origenes
	case "tipos_req":
		return l.TiposReq
	case "servicios":
		return l.Servicios
	case "intervenciones":
		return l.Intervenciones
	case "medios":
		return l.Medios
	case "resultados":
		return l.Resultados
	case "status":
		return l.Status
	}
	return nil
}

type AuditLog struct {
	ID      int    `json:"id"`
	Fecha   string `json:"fecha"`
	Usuario string `json:"usuario"`
	Rol     string `json:"rol"`
	Accion  string `json:"accion"`
	Entidad string `json:"entidad"`
	Detalle string `json:"detalle"`
}
