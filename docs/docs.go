// Package docs registra el documento OpenAPI que sirve /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/animals": {
			"get": {
				"summary": "Catálogo público de animales",
				"tags": [
					"animals"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/animals/{animalID}": {
			"get": {
				"summary": "Detalle público",
				"tags": [
					"animals"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "not found",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			}
		},
		"/animals/{animalID}/likes": {
			"post": {
				"summary": "Like",
				"tags": [
					"animals"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"409": {
						"description": "conflict",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			},
			"delete": {
				"summary": "Quitar like",
				"tags": [
					"animals"
				],
				"responses": {
					"204": {
						"description": "OK"
					}
				}
			}
		},
		"/animals/{animalID}/applications": {
			"post": {
				"summary": "Enviar solicitud de adopción",
				"tags": [
					"applications"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"409": {
						"description": "conflict",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/me/likes": {
			"get": {
				"summary": "Mis likes",
				"tags": [
					"animals"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/me/applications": {
			"get": {
				"summary": "Mis solicitudes",
				"tags": [
					"applications"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/me/applications/{applicationID}": {
			"get": {
				"summary": "Mi solicitud",
				"tags": [
					"applications"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			},
			"patch": {
				"summary": "Editar mi solicitud",
				"tags": [
					"applications"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"409": {
						"description": "conflict",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/me/applications/{applicationID}/withdraw": {
			"post": {
				"summary": "Retirar solicitud",
				"tags": [
					"applications"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"409": {
						"description": "conflict",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/me": {
			"get": {
				"summary": "Identidad y permisos del usuario actual",
				"tags": [
					"me"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			}
		},
		"/references": {
			"get": {
				"summary": "Especies, razas y colores",
				"tags": [
					"references"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/staff/references": {
			"post": {
				"summary": "Alta de referencia",
				"tags": [
					"references"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/staff/animals": {
			"get": {
				"summary": "Listado staff",
				"tags": [
					"staff-animals"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			},
			"post": {
				"summary": "Alta de animal",
				"tags": [
					"staff-animals"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/staff/animals/{animalID}": {
			"get": {
				"summary": "Detalle staff",
				"tags": [
					"staff-animals"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			},
			"patch": {
				"summary": "Editar perfil",
				"tags": [
					"staff-animals"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			},
			"delete": {
				"summary": "Borrar borrador",
				"tags": [
					"staff-animals"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"409": {
						"description": "conflict",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			}
		},
		"/staff/animals/{animalID}/publish": {
			"post": {
				"summary": "Publicar",
				"tags": [
					"staff-animals"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"409": {
						"description": "conflict",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			}
		},
		"/staff/animals/{animalID}/unpublish": {
			"post": {
				"summary": "Despublicar",
				"tags": [
					"staff-animals"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"409": {
						"description": "conflict",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			}
		},
		"/staff/intakes": {
			"post": {
				"summary": "Ingreso de un animal nuevo",
				"tags": [
					"staff-intakes"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/staff/animals/{animalID}/intakes": {
			"get": {
				"summary": "Ingresos",
				"tags": [
					"staff-intakes"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			},
			"post": {
				"summary": "Reingreso",
				"tags": [
					"staff-intakes"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"409": {
						"description": "conflict",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/staff/animals/{animalID}/outcomes": {
			"get": {
				"summary": "Salidas",
				"tags": [
					"staff-outcomes"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			},
			"post": {
				"summary": "Registrar salida",
				"tags": [
					"staff-outcomes"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"409": {
						"description": "conflict",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/staff/animals/{animalID}/activity": {
			"get": {
				"summary": "Actividad del animal",
				"tags": [
					"staff-activity"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			}
		},
		"/staff/applications": {
			"get": {
				"summary": "Solicitudes",
				"tags": [
					"staff-applications"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			}
		},
		"/staff/applications/{applicationID}": {
			"get": {
				"summary": "Solicitud",
				"tags": [
					"staff-applications"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			}
		},
		"/staff/applications/{applicationID}/history": {
			"get": {
				"summary": "Historial de estados",
				"tags": [
					"staff-applications"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			}
		},
		"/staff/applications/{applicationID}/status": {
			"patch": {
				"summary": "Cambiar estado",
				"tags": [
					"staff-applications"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"409": {
						"description": "conflict",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/staff/tasks": {
			"get": {
				"summary": "Tareas",
				"tags": [
					"staff-tasks"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			},
			"post": {
				"summary": "Alta de tarea",
				"tags": [
					"staff-tasks"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/staff/tasks/{taskID}": {
			"get": {
				"summary": "Tarea",
				"tags": [
					"staff-tasks"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			},
			"patch": {
				"summary": "Editar tarea",
				"tags": [
					"staff-tasks"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			},
			"delete": {
				"summary": "Borrar tarea",
				"tags": [
					"staff-tasks"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			}
		},
		"/staff/animals/{animalID}/tasks": {
			"get": {
				"summary": "Tareas del animal",
				"tags": [
					"staff-tasks"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			}
		},
		"/staff/animals/{animalID}/notes": {
			"get": {
				"summary": "Notas",
				"tags": [
					"staff-notes"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			},
			"post": {
				"summary": "Alta de nota",
				"tags": [
					"staff-notes"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/staff/notes/{noteID}": {
			"patch": {
				"summary": "Editar nota",
				"tags": [
					"staff-notes"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			},
			"delete": {
				"summary": "Borrar nota",
				"tags": [
					"staff-notes"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			}
		},
		"/staff/animals/{animalID}/assessments": {
			"get": {
				"summary": "Evaluaciones",
				"tags": [
					"staff-assessments"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			},
			"post": {
				"summary": "Alta de evaluación",
				"tags": [
					"staff-assessments"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/staff/assessments/{assessmentID}": {
			"patch": {
				"summary": "Editar evaluación",
				"tags": [
					"staff-assessments"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			},
			"delete": {
				"summary": "Borrar evaluación",
				"tags": [
					"staff-assessments"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			}
		},
		"/staff/characteristics": {
			"get": {
				"summary": "Características",
				"tags": [
					"staff-characteristics"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			},
			"post": {
				"summary": "Alta de característica",
				"tags": [
					"staff-characteristics"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/staff/characteristics/{characteristicID}": {
			"patch": {
				"summary": "Editar característica",
				"tags": [
					"staff-characteristics"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				},
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			},
			"delete": {
				"summary": "Borrar característica",
				"tags": [
					"staff-characteristics"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			}
		},
		"/staff/animals/{animalID}/characteristics": {
			"get": {
				"summary": "Características del animal",
				"tags": [
					"staff-characteristics"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			}
		},
		"/staff/animals/{animalID}/characteristics/{characteristicID}": {
			"put": {
				"summary": "Asignar",
				"tags": [
					"staff-characteristics"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			},
			"delete": {
				"summary": "Desasignar",
				"tags": [
					"staff-characteristics"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"$ref": "#/definitions/apperr.Error"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"apperr.Error": {
			"type": "object",
			"properties": {
				"error": {
					"type": "object",
					"properties": {
						"kind": {
							"type": "string"
						},
						"message": {
							"type": "string"
						},
						"fields": {
							"type": "object",
							"additionalProperties": {
								"type": "array",
								"items": {
									"type": "string"
								}
							}
						}
					}
				}
			}
		}
	}
}`

// SwaggerInfo se puede ajustar al arrancar (host, base path).
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "",
	BasePath:		 "/",
	Schemes:		  []string{},
	Title:			"Animal Shelter API",
	Description:	  "Adopciones, ingresos y salidas de animales del refugio.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
