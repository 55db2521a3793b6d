package notification_service

/// FCM is the single push channel for the app

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/CardHaven/CardHaven-Backend/services/monitoring/logging"
	"github.com/CardHaven/CardHaven-Backend/utils"
	"google.golang.org/api/option"
)

type PushConfig struct {
	GoogleAppCredentials string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
}

type PushNotificationInfo struct {
	Title        string `json:"title"`
	Message      string `json:"message"`
	UserFCMToken string `json:"user_fcm_token"`
	Badge        int    `json:"badge"`
}

type PushNotificationService struct {
	app    *firebase.App
	logger *logging.Logger
}

func NewPushNotificationService(logger *logging.Logger) *PushNotificationService {

	var config PushConfig
	err := utils.LoadCustomConfig(utils.EnvPath, &config)
	if err != nil {
		logger.Error(err)
		return nil
	}

	opt := option.WithCredentialsFile(config.GoogleAppCredentials)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		logger.Error(err)
		return nil
	}

	return &PushNotificationService{
		app:    app,
		logger: logger,
	}
}

func (p *PushNotificationService) SendPush(info *PushNotificationInfo) error {

	client, err := p.app.Messaging(context.Background())
	if err != nil {
		return err
	}

	newMessage := messaging.Message{
		Token: info.UserFCMToken,
		Notification: &messaging.Notification{
			Title: info.Title,
			Body:  info.Message,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Badge: &info.Badge,
					Sound: "default",
				},
			},
		},
	}

	response, err := client.Send(context.Background(), &newMessage)
	if err != nil {
		return err
	}

	p.logger.Info(fmt.Sprintf("push delivered: %v", response))
	return nil
}
