package mappers

import (
	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	"github.com/LavaJover/shvark-earnings-service/internal/infrastructure/postgres/models"
)

func ToDomainEarning(model *models.EarningModel) *domain.Earning {
	return &domain.Earning{
		ID:             model.ID,
		ProxyIP:        model.ProxyIP,
		ProxyPort:      model.ProxyPort,
		ProxyKey:       model.ProxyKey,
		ServerID:       model.ServerID,
		BotID:          model.BotID,
		BotName:        model.BotName,
		FaucetName:     model.FaucetName,
		FaucetURL:      model.FaucetURL,
		RewardAmount:   model.RewardAmount,
		RewardCurrency: model.RewardCurrency,
		IdempotencyKey: model.IdempotencyKey,
		Success:        model.Success,
		ErrorMessage:   model.ErrorMessage,
		ExtraData:      model.ExtraData,
		EventTimestamp: model.EventTimestamp,
		CreatedAt:      model.CreatedAt,
	}
}

func ToGORMEarning(earning *domain.Earning) *models.EarningModel {
	return &models.EarningModel{
		ID:             earning.ID,
		ProxyIP:        earning.ProxyIP,
		ProxyPort:      earning.ProxyPort,
		ProxyKey:       earning.ProxyKey,
		ServerID:       earning.ServerID,
		BotID:          earning.BotID,
		BotName:        earning.BotName,
		FaucetName:     earning.FaucetName,
		FaucetURL:      earning.FaucetURL,
		RewardAmount:   earning.RewardAmount,
		RewardCurrency: earning.RewardCurrency,
		IdempotencyKey: earning.IdempotencyKey,
		Success:        earning.Success,
		ErrorMessage:   earning.ErrorMessage,
		ExtraData:      earning.ExtraData,
		EventTimestamp: earning.EventTimestamp,
		CreatedAt:      earning.CreatedAt,
	}
}
