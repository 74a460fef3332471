package assistant

import (
	"testing"

	"smarthome_gateway/internal/models"
)

func TestRenderCommands(t *testing.T) {
	r := NewRenderer(testDoors(t))
	snap := emptySnapshot()

	tests := []struct {
		code int
		want string
	}{
		{1, "Encendiendo luces exteriores."},
		{2, "Apagando luces exteriores."},
		{7, "Encendiendo luces de la cocina."},
		{12, "Apagando luces del baño."},
		{17, "Encendiendo todas las luces."},
		{18, "Apagando todas las luces."},
	}
	for _, tt := range tests {
		got := r.Render(models.CommandAction(tt.code), snap)
		if got != tt.want {
			t.Errorf("Render(command %d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestRenderDoors(t *testing.T) {
	r := NewRenderer(testDoors(t))
	snap := emptySnapshot()

	tests := []struct {
		letter string
		door   string
		want   string
	}{
		{"A", "main", "Abriendo puerta principal."},
		{"C", "main", "Cerrando puerta principal."},
		{"G", "garage", "Abriendo puerta de la cochera."},
		{"H", "garage", "Cerrando puerta de la cochera."},
	}
	for _, tt := range tests {
		got := r.Render(models.DoorAction(tt.letter, tt.door), snap)
		if got != tt.want {
			t.Errorf("Render(door %s) = %q, want %q", tt.letter, got, tt.want)
		}
	}
}

func TestRenderQueries(t *testing.T) {
	r := NewRenderer(testDoors(t))
	snap := emptySnapshot()
	snap.Sensors.Temperature.Value = 26.4
	snap.Sensors.Temperature.Status = models.TempHigh
	snap.Sensors.Gas.Level = 160
	snap.Sensors.Gas.Status = models.GasMedium
	snap.Sensors.Doors["main"] = models.DoorState{Open: false}
	snap.Sensors.Doors["garage"] = models.DoorState{Open: true}

	got := r.Render(models.QueryAction(models.SensorTemperature), snap)
	if got != "La temperatura actual es 26.4°C (alta)." {
		t.Errorf("temperature = %q", got)
	}

	got = r.Render(models.QueryAction(models.SensorGas), snap)
	if got != "El nivel de gas es 160 (medio)." {
		t.Errorf("gas = %q", got)
	}

	got = r.Render(models.QueryAction(models.SensorMotion), snap)
	if got != "No hay movimiento detectado." {
		t.Errorf("motion = %q", got)
	}
	snap.Sensors.Motion.Detected = true
	got = r.Render(models.QueryAction(models.SensorMotion), snap)
	if got != "Se ha detectado movimiento." {
		t.Errorf("motion detected = %q", got)
	}

	got = r.Render(models.QueryAction(models.SensorDoor), snap)
	want := "la puerta principal está cerrada, la puerta de la cochera está abierta."
	if got != want {
		t.Errorf("doors = %q, want %q", got, want)
	}
}

func TestRenderChatAndError(t *testing.T) {
	r := NewRenderer(testDoors(t))
	snap := emptySnapshot()

	if got := r.Render(models.ChatAction("Hola"), snap); got != "Hola" {
		t.Errorf("chat = %q", got)
	}
	if got := r.Render(models.ErrorAction("sin conexión"), snap); got != "sin conexión" {
		t.Errorf("error = %q", got)
	}
	if got := r.Render(models.ChatAction(""), snap); got != genericAck {
		t.Errorf("empty chat = %q, want generic ack", got)
	}
}
