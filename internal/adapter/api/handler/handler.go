package handler

import (
	"armabazar/internal/usecase"
)

var (
	conversationHandler *ConversationHandler
	productHandler      *ProductHandler
	serviceHandler      *ServiceHandler
	reportHandler       *ReportHandler
	adminHandler        *AdminHandler
)

func Setup(
	conversationUseCase *usecase.ConversationUseCase,
	productUseCase *usecase.ProductUseCase,
	serviceUseCase *usecase.ServiceUseCase,
	reportUseCase *usecase.ReportUseCase,
	adminUseCase *usecase.AdminUseCase,
) {
	conversationHandler = NewConversationHandler(conversationUseCase)
	productHandler = NewProductHandler(productUseCase)
	serviceHandler = NewServiceHandler(serviceUseCase)
	reportHandler = NewReportHandler(reportUseCase)
	adminHandler = NewAdminHandler(adminUseCase, reportUseCase, productUseCase, serviceUseCase)
}

func GetConversationHandler() *ConversationHandler {
	return conversationHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetServiceHandler() *ServiceHandler {
	return serviceHandler
}

func GetReportHandler() *ReportHandler {
	return reportHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}
