package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	deliverycontext "numatu/internal/delivery/context"
	"numatu/internal/domain/constants"
	"numatu/internal/domain/entity"
	"numatu/internal/domain/service"
	"numatu/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// pushMessage is one notification addressed to an FCM topic.
type pushMessage struct {
	topic string
	title string
	body  string
}

type notificationService struct {
	sender service.NotificationService
	logger *slog.Logger
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	Sender service.NotificationService `optional:"true"`
	Logger *slog.Logger
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &notificationService{
		sender: params.Sender,
		logger: logger,
	}
}

func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Dispatch sends the handshake notification the event calls for
func (srv *notificationService) Dispatch(ctx context.Context, event *service.ChangeEvent) error {
	if event == nil || event.Collection == nil {
		return nil
	}

	msg, ok := routeNotification(event)
	if !ok {
		return nil
	}

	if srv.sender == nil {
		srv.log(ctx).Debug("Push sender not configured, dropping notification",
			slog.String("topic", msg.topic),
			slog.String("title", msg.title))

		return nil
	}

	c := event.Collection
	data := map[string]string{
		"collection_id": c.ID.String(),
		"status":        c.Status.String(),
		"version":       strconv.FormatInt(event.Version, 10),
		"material":      c.Material.String(),
	}
	if event.Abandoned {
		data["abandoned"] = "true"
	}

	if err := srv.sender.SendToTopic(ctx, msg.topic, msg.title, msg.body, data); err != nil {
		srv.log(ctx).Error("Failed to send notification",
			slog.String("topic", msg.topic),
			slog.Any("collection_id", c.ID),
			slog.Any("error", err))

		return errors.Wrap(err, "failed to send notification")
	}

	srv.log(ctx).Info("Notification sent",
		slog.String("topic", msg.topic),
		slog.String("title", msg.title),
		slog.Any("collection_id", c.ID),
		slog.Int64("version", event.Version))

	return nil
}

// routeNotification picks the recipient and text for an event. The confirmation code
// never leaves through push.
func routeNotification(event *service.ChangeEvent) (pushMessage, bool) {
	c := event.Collection

	switch {
	case event.Abandoned:
		return pushMessage{
			topic: userTopic(c.GeneratorID),
			title: "Coleta Abandonada",
			body:  fmt.Sprintf("O coletor desistiu da retirada de %s. Sua carga voltou ao marketplace.", c.Material),
		}, true

	case event.IsCreation() && c.Status == entity.StatusAnnounced:
		return pushMessage{
			topic: constants.TopicRoleCollectors,
			title: "Nova Oportunidade",
			body:  fmt.Sprintf("Material de %s disponível em %s.", c.Material, placeOf(c)),
		}, true

	case c.Status == entity.StatusAccepted:
		return pushMessage{
			topic: userTopic(c.GeneratorID),
			title: "Carga Aceita!",
			body:  fmt.Sprintf("Um coletor confirmou a retirada do material (%s).", c.Material),
		}, true

	case c.Status == entity.StatusEnRoute:
		return pushMessage{
			topic: userTopic(c.GeneratorID),
			title: "Coletor a Caminho",
			body:  fmt.Sprintf("O coletor saiu para retirar %s.", c.Material),
		}, true

	case c.Status == entity.StatusArrived:
		return pushMessage{
			topic: userTopic(c.GeneratorID),
			title: "Coletor no Local",
			body:  "O parceiro chegou ao endereço. Digite o código exibido pelo coletor para concluir.",
		}, true

	case c.Status == entity.StatusCompleted && c.CollectorID != nil:
		return pushMessage{
			topic: userTopic(*c.CollectorID),
			title: "Ciclo Finalizado",
			body:  fmt.Sprintf("Coleta de %s validada pelo anunciante.", c.Material),
		}, true

	case c.Status == entity.StatusCancelled && event.PreviousCollectorID != nil:
		return pushMessage{
			topic: userTopic(*event.PreviousCollectorID),
			title: "Coleta Cancelada",
			body:  fmt.Sprintf("O anunciante cancelou a coleta de %s.", c.Material),
		}, true
	}

	return pushMessage{}, false
}

func userTopic(id uuid.UUID) string {
	return constants.TopicUserPrefix + id.String()
}

func placeOf(c *entity.Collection) string {
	switch {
	case c.Location.Neighborhood != "":
		return c.Location.Neighborhood
	case c.Location.City != "":
		return c.Location.City
	case c.Location.Address != "":
		return c.Location.Address
	default:
		return "sua região"
	}
}
